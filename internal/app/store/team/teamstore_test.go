package teamstore_test

import (
	"errors"
	"testing"

	teamstore "github.com/dalemusser/duasite/internal/app/store/team"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func ptr[T any](v T) *T { return &v }

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Create(ctx, teamstore.Input{Name: ptr("Rahim"), Role: ptr("Volunteer")})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.Type != models.TeamTypeMember {
		t.Errorf("Type: got %q, want %q", m.Type, models.TeamTypeMember)
	}
	if !m.IsActive {
		t.Error("new members should be active by default")
	}
	if m.ID.IsZero() {
		t.Error("ID not assigned")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		in   teamstore.Input
		want string
	}{
		{"missing name", teamstore.Input{Role: ptr("x")}, "name is required"},
		{"missing role", teamstore.Input{Name: ptr("x")}, "role is required"},
		{"bad type", teamstore.Input{Name: ptr("x"), Role: ptr("y"), Type: ptr("volunteer")}, "type must be one of: founder, co_founder, member"},
		{"negative order", teamstore.Input{Name: ptr("x"), Role: ptr("y"), Order: ptr(-1)}, "order must be 0 or more"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, tt.in)
			if !apierr.IsValidation(err) || err.Error() != tt.want {
				t.Errorf("got %v, want validation %q", err, tt.want)
			}
		})
	}
}

func TestStore_List_ActiveAndTypeFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateTeamMember(ctx, "Second", models.TeamTypeMember, 2, true)
	fx.CreateTeamMember(ctx, "First", models.TeamTypeFounder, 1, true)
	fx.CreateTeamMember(ctx, "Hidden", models.TeamTypeMember, 0, false)

	active, err := store.List(ctx, teamstore.Filter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 2 || active[0].Name != "First" || active[1].Name != "Second" {
		t.Errorf("active list out of order or unfiltered: %+v", active)
	}

	all, err := store.List(ctx, teamstore.Filter{})
	if err != nil {
		t.Fatalf("List(all) failed: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Hidden" {
		t.Errorf("all list: %+v", all)
	}

	founders, err := store.List(ctx, teamstore.Filter{ActiveOnly: true, Type: models.TeamTypeFounder})
	if err != nil {
		t.Fatalf("List(founder) failed: %v", err)
	}
	if len(founders) != 1 || founders[0].Name != "First" {
		t.Errorf("founders: %+v", founders)
	}
}

func TestStore_Update_PartialLeavesOtherFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Create(ctx, teamstore.Input{
		Name:        ptr("Karim"),
		Role:        ptr("Treasurer"),
		Bio:         ptr("Long-time volunteer"),
		SocialLinks: &teamstore.SocialInput{LinkedIn: ptr("https://linkedin.com/in/karim")},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.Update(ctx, m.ID.Hex(), teamstore.Input{
		Role:        ptr("Secretary"),
		SocialLinks: &teamstore.SocialInput{Facebook: ptr("https://facebook.com/karim")},
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.Get(ctx, m.ID.Hex())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Role != "Secretary" {
		t.Errorf("Role: got %q", got.Role)
	}
	if got.Name != "Karim" || got.Bio != "Long-time volunteer" {
		t.Errorf("omitted fields changed: %+v", got)
	}
	if got.SocialLinks.LinkedIn == "" || got.SocialLinks.Facebook == "" {
		t.Errorf("social links not merged: %+v", got.SocialLinks)
	}
}

func TestStore_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Get(ctx, "000000000000000000000000"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Get(missing) = %v", err)
	}
	if _, err := store.Update(ctx, "nope", teamstore.Input{Name: ptr("x")}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Update(bad id) = %v", err)
	}
	if err := store.Delete(ctx, "000000000000000000000000"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Delete(missing) = %v", err)
	}
}
