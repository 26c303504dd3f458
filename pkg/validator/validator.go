package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports fields by their JSON names
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
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

// FormatValidationErrors keys messages by field path, e.g. windows[0].start_time
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := fieldPath(e.Namespace())
			switch e.Tag() {
			case "required":
				errors[field] = e.Field() + " is required"
			case "min":
				errors[field] = e.Field() + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = e.Field() + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = e.Field() + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = e.Field() + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = e.Field() + " must be one of " + e.Param()
			default:
				errors[field] = e.Field() + " is invalid"
			}
		}
	}

	return errors
}

// fieldPath drops the root struct name from a namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
