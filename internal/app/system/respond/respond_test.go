package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"go.uber.org/zap"
)

func TestError_InternalIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Error(rec, zap.NewNop(), "Partner", errors.New("connection refused 10.0.0.4:27017"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.4") {
		t.Errorf("store detail leaked: %s", rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("error: got %q", body["error"])
	}
}

func TestError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Error(rec, nil, "Advisor", apierr.NotFound("Advisor"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Advisor not found") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestDecode_Malformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	var v map[string]any
	err := respond.Decode(req, &v)
	if !apierr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))
	var v map[string]any
	if err := respond.Decode(req, &v); !apierr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
