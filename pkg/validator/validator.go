package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report field names from json tags so validation errors match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors converts validator errors to field-level message lists.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string][]string {
	errors := make(map[string][]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			var message string
			switch e.Tag() {
			case "required":
				message = "The " + field + " field is required"
			case "email":
				message = "The " + field + " must be a valid email address"
			case "min":
				message = "The " + field + " must be at least " + e.Param() + " characters"
			case "max":
				message = "The " + field + " must be at most " + e.Param() + " characters"
			case "gte":
				message = "The " + field + " must be greater than or equal to " + e.Param()
			case "lte":
				message = "The " + field + " must be less than or equal to " + e.Param()
			case "oneof":
				message = "The " + field + " must be one of: " + e.Param()
			default:
				message = "The " + field + " is invalid"
			}
			errors[field] = append(errors[field], message)
		}
	}

	return errors
}
