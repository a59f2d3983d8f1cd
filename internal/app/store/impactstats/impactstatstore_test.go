package impactstatstore_test

import (
	"testing"

	impactstatstore "github.com/dalemusser/duasite/internal/app/store/impactstats"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := impactstatstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, impactstatstore.Input{Label: ptr("Volunteers"), Value: ptr("200+"), Order: ptr(1)}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, impactstatstore.Input{Label: ptr("Beneficiaries"), Value: ptr("5000+"), Order: ptr(0)}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Label != "Beneficiaries" {
		t.Errorf("list order: %+v", list)
	}
}

func TestStore_Create_RequiresValue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := impactstatstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, impactstatstore.Input{Label: ptr("Volunteers")})
	if !apierr.IsValidation(err) || err.Error() != "value is required" {
		t.Errorf("got %v, want validation %q", err, "value is required")
	}
}
