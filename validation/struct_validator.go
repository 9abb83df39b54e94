package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrInvalid is wrapped by errors returned from Struct when s is not a struct.
var ErrInvalid = errors.New("validation: invalid input")

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json tag names so errors match the request payload.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := FieldName(fld)
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates s using `validate` struct tags. It returns the failing
// fields in the order reported by the validator; an empty result means s is
// valid. A non-nil error means s could not be validated at all.
func Struct(s any) ([]FieldError, error) {
	err := getValidator().Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, errors.Join(ErrInvalid, err)
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   e.Field(),
			Message: formatValidationError(e),
		})
	}
	return fieldErrors, nil
}

// Summary joins field errors into a single "field: message; ..." string.
func Summary(fields []FieldError) string {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return strings.Join(messages, "; ")
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
