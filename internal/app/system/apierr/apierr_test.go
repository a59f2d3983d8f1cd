package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassify_NoDocuments(t *testing.T) {
	e, internal := apierr.Classify(fmt.Errorf("find: %w", mongo.ErrNoDocuments), "Initiative")
	if internal {
		t.Error("ErrNoDocuments should not be internal")
	}
	if e.Kind != apierr.KindNotFound {
		t.Errorf("kind: got %v, want NotFound", e.Kind)
	}
	if e.Message != "Initiative not found" {
		t.Errorf("message: got %q", e.Message)
	}
}

func TestClassify_Validation(t *testing.T) {
	e, internal := apierr.Classify(apierr.Validation("All fields are required"), "Message")
	if internal {
		t.Error("validation should not be internal")
	}
	if apierr.Status(e.Kind) != http.StatusBadRequest {
		t.Errorf("status: got %d", apierr.Status(e.Kind))
	}
}

func TestClassify_UnknownHidesDetail(t *testing.T) {
	e, internal := apierr.Classify(errors.New("E11000 duplicate key error collection: duasite.initiatives"), "Initiative")
	if !internal {
		t.Error("unknown error should be internal")
	}
	if e.Message != "Internal server error" {
		t.Errorf("internal detail leaked: %q", e.Message)
	}
	if apierr.Status(e.Kind) != http.StatusInternalServerError {
		t.Errorf("status: got %d", apierr.Status(e.Kind))
	}
}

func TestIsNotFound(t *testing.T) {
	if !apierr.IsNotFound(mongo.ErrNoDocuments) {
		t.Error("ErrNoDocuments should be not found")
	}
	if !apierr.IsNotFound(apierr.NotFound("Partner")) {
		t.Error("NotFound should be not found")
	}
	if apierr.IsNotFound(apierr.Validation("x")) {
		t.Error("validation is not not-found")
	}
}

func TestStatus_Unauthorized(t *testing.T) {
	if got := apierr.Status(apierr.ErrUnauthorized.Kind); got != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", got)
	}
}
