package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	internal "github.com/contractly/timesheet-management/internal"
)

var validate = validator.New()

// Struct validates a DTO via its validator tags and converts failures into the
// application error taxonomy.
func Struct(dto interface{}) *internal.AppError {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	fieldErrors := make([]internal.ValidationError, 0, len(ve))
	for _, fe := range ve {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldError(fe),
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}

	return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
		WithDetails(internal.ValidationErrors{Errors: fieldErrors})
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match the %s format", field, fe.Param())
	case "uuid":
		return field + " must be a valid uuid"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
