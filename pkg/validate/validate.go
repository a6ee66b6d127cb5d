// Package validate wires go-playground/validator with the app's custom
// rules. Domain validators build on New; entity services use Struct
// directly.
package validate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	apperrors "coursebook/pkg/errors"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	timeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// New returns a validator with the custom rules registered:
//
//	course_date  YYYY-MM-DD
//	course_time  HH:MM, zero-padded so string order equals time order
func New() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("course_date", func(fl validator.FieldLevel) bool {
		return dateRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("course_time", func(fl validator.FieldLevel) bool {
		return timeRegex.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates s and converts field failures into a structured
// validation AppError with per-field messages.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Internal("validation failed", err)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = describe(fe)
	}
	return apperrors.Validation("invalid input", details)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "course_date":
		return "must be a date in YYYY-MM-DD format"
	case "course_time":
		return "must be a time in HH:MM format"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
