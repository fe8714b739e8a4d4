package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator that reports field names from json tags,
// so failure details match what the client actually sent.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return validate
}

// validationDetails turns validator failures into per-field messages.
func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fe.Field()+" is required")
		case "email":
			details = append(details, fe.Field()+" must be a valid email address")
		case "min":
			details = append(details, fe.Field()+" must not be empty")
		default:
			details = append(details, fe.Field()+" is invalid")
		}
	}
	return details
}
