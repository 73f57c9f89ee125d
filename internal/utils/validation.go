package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationFieldErrors flattens a validator error into a
// field → message map suitable for the error envelope's `details`,
// so forms can surface violations next to the offending input.
func ValidationFieldErrors(err error) map[string]string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return nil
	}

	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[strings.ToLower(fe.Field())] = validationMessage(fe)
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "currency":
		return "Must be a valid currency amount"
	case "password":
		return "Password must contain at least one uppercase letter and one number"
	default:
		return fmt.Sprintf("Failed '%s' validation", fe.Tag())
	}
}
