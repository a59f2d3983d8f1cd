// Package inputval validates API input records with go-playground/validator.
// Errors come back as apierr validation errors naming the JSON field.
package inputval

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-playground/validator/v10"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// httpurl: empty, a site-relative path, or an absolute http(s) URL.
	_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || strings.HasPrefix(s, "/") || urlutil.IsValidAbsHTTPURL(s)
	})
	// looseemail: empty or something shaped like an email.
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || IsValidEmail(s)
	})
	return v
}

// IsValidEmail applies the contact-form email shape check.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// Check validates v's struct tags.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierr.Validation("Invalid input")
	}
	return apierr.Validation(message(verrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "gte":
		return field + " must be " + fe.Param() + " or more"
	case "lte":
		return field + " must be " + fe.Param() + " or less"
	case "httpurl":
		return field + " must be a valid http(s) URL"
	case "looseemail", "email":
		return field + " must be a valid email address"
	default:
		return field + " is invalid"
	}
}

// Field pairs a JSON field name with a possibly-missing string value.
type Field struct {
	Name  string
	Value *string
}

// Require returns a validation error naming the first field that is nil or blank.
func Require(fields ...Field) error {
	for _, f := range fields {
		if f.Value == nil || strings.TrimSpace(*f.Value) == "" {
			return apierr.Validation(f.Name + " is required")
		}
	}
	return nil
}

// NotBlank rejects fields that were supplied but are blank. Nil fields pass,
// so partial updates may omit required fields but not clear them.
func NotBlank(fields ...Field) error {
	for _, f := range fields {
		if f.Value != nil && strings.TrimSpace(*f.Value) == "" {
			return apierr.Validation(f.Name + " is required")
		}
	}
	return nil
}
