package slideshowstore_test

import (
	"testing"

	slideshowstore "github.com/dalemusser/duasite/internal/app/store/slideshow"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func TestStore_Create_AppendsAndCaps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := slideshowstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < models.MaxSlides; i++ {
		s, err := store.Create(ctx, slideshowstore.Input{ImageURL: ptr("https://res.cloudinary.com/demo/s.jpg")})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if s.Order != i {
			t.Errorf("slide %d order: got %d", i, s.Order)
		}
	}

	_, err := store.Create(ctx, slideshowstore.Input{ImageURL: ptr("https://res.cloudinary.com/demo/s.jpg")})
	if err != slideshowstore.ErrFull {
		t.Fatalf("11th slide: got %v, want ErrFull", err)
	}
	if n, _ := store.Count(ctx); n != models.MaxSlides {
		t.Errorf("Count: got %d, want %d", n, models.MaxSlides)
	}
}

func TestStore_Delete_Renumbers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := slideshowstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var slides []models.SlideshowImage
	for i := 0; i < models.MaxSlides; i++ {
		slides = append(slides, fx.CreateSlide(ctx, i))
	}
	if err := store.Delete(ctx, slides[3].ID.Hex()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	rest, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rest) != models.MaxSlides-1 {
		t.Fatalf("got %d slides, want %d", len(rest), models.MaxSlides-1)
	}
	want := append(append([]models.SlideshowImage{}, slides[:3]...), slides[4:]...)
	for i, s := range rest {
		if s.Order != i {
			t.Errorf("slide %d order: got %d", i, s.Order)
		}
		if s.ID != want[i].ID {
			t.Errorf("slide %d: relative order changed", i)
		}
	}
}

func TestStore_Reorder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := slideshowstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateSlide(ctx, 0)
	b := fx.CreateSlide(ctx, 1)

	got, err := store.Reorder(ctx, []slideshowstore.Position{
		{ID: a.ID.Hex(), Order: 1},
		{ID: b.ID.Hex(), Order: 0},
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("reordered list: %+v", got)
	}
}

func TestStore_Reorder_RejectsOutOfRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := slideshowstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateSlide(ctx, 0)
	b := fx.CreateSlide(ctx, 1)

	_, err := store.Reorder(ctx, []slideshowstore.Position{
		{ID: a.ID.Hex(), Order: 1},
		{ID: b.ID.Hex(), Order: models.MaxSlides},
	})
	if !apierr.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
	cur, err := store.Get(ctx, a.ID.Hex())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cur.Order != 0 {
		t.Errorf("rejected batch still wrote: order %d", cur.Order)
	}

	if _, err := store.Reorder(ctx, []slideshowstore.Position{{ID: "bogus", Order: 0}}); !apierr.IsValidation(err) {
		t.Errorf("bad id: got %v, want validation error", err)
	}
}

func TestStore_Reorder_RejectsUnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := slideshowstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateSlide(ctx, 0)
	missing := primitive.NewObjectID().Hex()

	_, err := store.Reorder(ctx, []slideshowstore.Position{
		{ID: a.ID.Hex(), Order: 3},
		{ID: missing, Order: 0},
	})
	if !apierr.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
	cur, err := store.Get(ctx, a.ID.Hex())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cur.Order != 0 {
		t.Errorf("rejected batch still wrote: order %d", cur.Order)
	}
}

func TestStore_Update_CropMerges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := slideshowstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s, err := store.Create(ctx, slideshowstore.Input{
		ImageURL: ptr("https://res.cloudinary.com/demo/s.jpg"),
		CropArea: &slideshowstore.CropInput{X: ptr(10.0), Y: ptr(20.0), Width: ptr(300.0), Height: ptr(200.0)},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := store.Update(ctx, s.ID.Hex(), slideshowstore.Input{CropArea: &slideshowstore.CropInput{Width: ptr(400.0)}})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.CropArea == nil || got.CropArea.Width != 400 || got.CropArea.X != 10 {
		t.Errorf("crop merge: %+v", got.CropArea)
	}
	if _, err := store.Update(ctx, s.ID.Hex(), slideshowstore.Input{Order: ptr(10)}); !apierr.IsValidation(err) {
		t.Errorf("order 10: got %v, want validation error", err)
	}
}
