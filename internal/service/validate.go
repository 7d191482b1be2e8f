// Package service implements the application's business logic on top of
// the store, keeping HTTP handlers thin.
package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/resenaapp/resena-server/internal/errors"
)

// validate is the shared validator instance for request structs.
// Field names in validation errors follow the JSON tags so messages
// match what the client actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct validates a request struct and maps validator failures to
// domain errors. Missing required fields are a validation error, any
// other constraint failure is a format error.
func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Internal("request validation failed").WithCause(err)
	}

	first := validationErrors[0]
	if first.Tag() == "required" {
		return errors.Validation(fmt.Sprintf("field %s is required", first.Field()))
	}
	return errors.Format(fmt.Sprintf("field %s is invalid", first.Field()))
}
