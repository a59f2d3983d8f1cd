package initiativestore_test

import (
	"errors"
	"testing"
	"time"

	initiativestore "github.com/dalemusser/duasite/internal/app/store/initiatives"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/indexes"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func ptr[T any](v T) *T { return &v }

func TestStore_Create_DerivesSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := initiativestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	it, err := store.Create(ctx, initiativestore.Input{
		Title:       ptr("DUA Healthcamp!"),
		Description: ptr("Free checkups"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if it.Slug != "dua-healthcamp" {
		t.Errorf("Slug: got %q, want dua-healthcamp", it.Slug)
	}
	if it.Category != "other" || it.Status != "ongoing" {
		t.Errorf("defaults: category %q status %q", it.Category, it.Status)
	}
	if it.Images == nil || it.Objectives == nil {
		t.Error("list fields should default to empty, not nil")
	}
}

func TestStore_Create_ExplicitSlugIsNormalized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := initiativestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	it, err := store.Create(ctx, initiativestore.Input{
		Title:       ptr("Winter Clothes"),
		Slug:        ptr("Winter 2024"),
		Description: ptr("Blankets"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if it.Slug != "winter-2024" {
		t.Errorf("Slug: got %q, want winter-2024", it.Slug)
	}
}

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := initiativestore.New(db)

	in := initiativestore.Input{Title: ptr("Tree Plantation"), Description: ptr("Trees")}
	if _, err := store.Create(ctx, in); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, in)
	if !errors.Is(err, initiativestore.ErrDuplicateSlug) {
		t.Fatalf("got %v, want ErrDuplicateSlug", err)
	}
	if e, internal := apierr.Classify(err, "Initiative"); !internal || e.Kind != apierr.KindInternal {
		t.Errorf("duplicate slug should classify as internal, got %+v", e)
	}
}

func TestStore_Get_FallsBackToSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := initiativestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	it := fx.CreateInitiative(ctx, "Iftar", "iftar-2024", true, false)

	byID, err := store.Get(ctx, it.ID.Hex())
	if err != nil || byID.ID != it.ID {
		t.Fatalf("Get by id: %v %+v", err, byID)
	}
	bySlug, err := store.Get(ctx, "iftar-2024")
	if err != nil || bySlug.ID != it.ID {
		t.Fatalf("Get by slug: %v %+v", err, bySlug)
	}
	if _, err := store.Get(ctx, "no-such-initiative"); !apierr.IsNotFound(err) {
		t.Errorf("missing slug: got %v, want not found", err)
	}
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := initiativestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateInitiative(ctx, "A", "a", true, true)
	fx.CreateInitiative(ctx, "B", "b", true, false)
	fx.CreateInitiative(ctx, "C", "c", false, true)

	// same order: the newer initiative lists first
	if _, err := db.Collection(initiativestore.Collection).UpdateOne(ctx,
		bson.M{"_id": a.ID},
		bson.M{"$set": bson.M{"created_at": time.Now().UTC().Add(-time.Hour)}},
	); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	active, err := store.List(ctx, initiativestore.Filter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 2 || active[0].Slug != "b" || active[1].Slug != "a" {
		t.Errorf("equal order should list newest first: %+v", active)
	}

	featured, err := store.List(ctx, initiativestore.Filter{ActiveOnly: true, Highlighted: ptr(true)})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(featured) != 1 || featured[0].Slug != "a" {
		t.Errorf("featured: %+v", featured)
	}

	all, err := store.List(ctx, initiativestore.Filter{Category: "healthcare"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("inactive records should appear when not filtering: got %d", len(all))
	}

	n, err := store.CountActive(ctx)
	if err != nil || n != 2 {
		t.Errorf("CountActive: got %d, %v", n, err)
	}
}

func TestStore_Update_KeepsSlugOnTitleChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := initiativestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	it := fx.CreateInitiative(ctx, "Old", "old-title", true, false)
	got, err := store.Update(ctx, it.ID.Hex(), initiativestore.Input{Title: ptr("New Title"), Status: ptr("passed")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Slug != "old-title" || got.Title != "New Title" || got.Status != "passed" {
		t.Errorf("update: %+v", got)
	}
	if got.Description != it.Description {
		t.Errorf("Description changed: %q", got.Description)
	}

	if _, err := store.Update(ctx, it.ID.Hex(), initiativestore.Input{Status: ptr("cancelled")}); !apierr.IsValidation(err) {
		t.Errorf("bad status: got %v, want validation error", err)
	}
}
