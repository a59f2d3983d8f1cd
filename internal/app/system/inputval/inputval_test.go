package inputval

import (
	"testing"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"user+tag@sub.example.org", true},
		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"user@localhost", false},
		{"@example.com", false},
		{"user @example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type sample struct {
	Type  *string `json:"type" validate:"omitempty,oneof=founder co_founder member"`
	Order *int    `json:"order" validate:"omitempty,gte=0"`
	Photo *string `json:"photo" validate:"omitempty,httpurl"`
	Email *string `json:"email" validate:"omitempty,looseemail"`
}

func ptr[T any](v T) *T { return &v }

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"all nil", sample{}, ""},
		{"valid", sample{Type: ptr("founder"), Order: ptr(2), Photo: ptr("https://res.cloudinary.com/x.jpg"), Email: ptr("a@b.co")}, ""},
		{"clearing photo", sample{Photo: ptr("")}, ""},
		{"bad enum", sample{Type: ptr("ceo")}, "type must be one of: founder, co_founder, member"},
		{"negative order", sample{Order: ptr(-1)}, "order must be 0 or more"},
		{"bad url", sample{Photo: ptr("javascript:alert(1)")}, "photo must be a valid http(s) URL"},
		{"bad email", sample{Email: ptr("nope")}, "email must be a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !apierr.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("message: got %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	if err := Require(Field{"name", ptr("x")}, Field{"role", ptr("y")}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := Require(Field{"name", ptr("x")}, Field{"role", ptr("  ")}, Field{"bio", nil})
	if err == nil || err.Error() != "role is required" {
		t.Errorf("got %v, want role is required", err)
	}
}

func TestNotBlank(t *testing.T) {
	if err := NotBlank(Field{"name", nil}, Field{"role", ptr("y")}); err != nil {
		t.Errorf("nil fields should pass, got %v", err)
	}
	if err := NotBlank(Field{"title", ptr("")}); err == nil || err.Error() != "title is required" {
		t.Errorf("got %v, want title is required", err)
	}
}
