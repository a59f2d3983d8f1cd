package home

import (
	"testing"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
)

func TestFocalPoint(t *testing.T) {
	tests := []struct {
		name string
		crop *models.CropArea
		want string
	}{
		{"none", nil, ""},
		{"zero size", &models.CropArea{X: 10, Y: 10}, ""},
		{"centered", &models.CropArea{X: 20, Y: 10, Width: 40, Height: 30}, "object-position: 40.0% 25.0%"},
		{"clamped", &models.CropArea{X: 90, Y: -20, Width: 40, Height: 10}, "object-position: 100.0% 0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(focalPoint(tt.crop)); got != tt.want {
				t.Errorf("focalPoint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_ActiveContentOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSlide(ctx, 1)
	fx.CreateSlide(ctx, 0)
	fx.CreateInitiative(ctx, "Seba Tori", "seba-tori", true, true)
	fx.CreateInitiative(ctx, "Korail Diaries", "korail-diaries", true, false)
	fx.CreateInitiative(ctx, "Hidden Camp", "hidden-camp", false, true)

	vm, err := h.load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !vm.HasSlides || len(vm.Slides) != 2 || !vm.Slides[0].First || vm.Slides[0].Order != 0 {
		t.Errorf("slides = %+v", vm.Slides)
	}
	if len(vm.Initiatives) != 1 || vm.Initiatives[0].Slug != "seba-tori" {
		t.Errorf("featured = %+v, want only seba-tori", vm.Initiatives)
	}
}
