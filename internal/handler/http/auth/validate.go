package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks request structs before they reach the service layer, so
// shape errors produce a field-level message instead of a generic one.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest runs struct validation and converts the first failure
// into a client-safe message.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return fmt.Errorf("invalid request body")
	}
	first := vErrs[0]
	field := strings.ToLower(first.Field())
	switch first.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("%s must be a valid email address", field)
	case "min":
		return fmt.Errorf("%s must be at least %s characters", field, first.Param())
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}
