// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ArgumentError reports tool arguments that were rejected before any
// upstream call was made. Msg is shown to the client verbatim.
type ArgumentError struct {
	Msg string
	Err error
}

func (e *ArgumentError) Error() string { return e.Msg }

func (e *ArgumentError) Unwrap() error { return e.Err }

func argErrorf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// argValidator wraps the go-playground validator so that messages use the
// json argument names clients send.
type argValidator struct {
	v *validator.Validate
}

func newArgValidator() *argValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &argValidator{v: v}
}

// decode unmarshals raw into dst and validates it. Empty input is treated
// as an empty object.
func (a *argValidator) decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ArgumentError{Msg: fmt.Sprintf("Invalid arguments: %s must be %s", typeErr.Field, jsonKind(typeErr.Type)), Err: err}
		}
		return &ArgumentError{Msg: "Invalid arguments: " + err.Error(), Err: err}
	}
	if err := a.v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return validationError(verrs)
		}
		return &ArgumentError{Msg: "Invalid arguments: " + err.Error(), Err: err}
	}
	return nil
}

// validationError renders every failed field, in struct order.
func validationError(errs validator.ValidationErrors) *ArgumentError {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return &ArgumentError{Msg: "Invalid arguments: " + strings.Join(msgs, "; "), Err: errs}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice:
		return "an array"
	default:
		return "a string"
	}
}
