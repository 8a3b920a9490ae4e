package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/zatekoja/hbnb-web/pkg/errors"
)

// Validator checks form input before any API call
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator reporting JSON field names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return ""
		}
		return name
	})

	return &Validator{v: v}
}

// Validate returns a VALIDATION error describing the first failed field
func (v *Validator) Validate(s interface{}) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return apperrors.NewInternalError("failed to validate input", err)
	}
	return apperrors.NewValidationError(friendlyMessage(validationErrs[0]))
}

func friendlyMessage(e validator.FieldError) string {
	field := strings.ReplaceAll(e.Field(), "_", " ")
	switch e.Tag() {
	case "required", "required_without":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "eqfield":
		if e.Param() == "Password" {
			return "passwords do not match"
		}
		return fmt.Sprintf("%s must match %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
	default:
		return field + " is invalid"
	}
}
