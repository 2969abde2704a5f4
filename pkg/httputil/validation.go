package httputil

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/platefront/backoffice-backend/pkg/errors"
)

var validate = validator.New()

// Validate validates a struct using go-playground/validator
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		parts := make([]string, 0, len(validationErrors))

		for _, e := range validationErrors {
			parts = append(parts, e.Field()+" "+formatValidationError(e))
		}

		return errors.Validation(strings.Join(parts, "; "))
	}
	return nil
}

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
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
