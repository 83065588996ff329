package middleware

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by the request validators
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names from json/form tags so error keys match the wire format
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// FieldErrors flattens validator errors into the field -> message map used by
// ValidationErrorResponse
func FieldErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request data!"
		return errors
	}

	for _, fe := range validationErrors {
		errors[fe.Field()] = fieldMessage(fe)
	}
	return errors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", strings.Title(fe.Field()))
	case "email":
		return "Must be a valid email address!"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long!", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s!", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long!", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s!", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s!", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("Must be greater than %s!", fe.Param())
	default:
		return "Invalid value!"
	}
}
