package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"hostmaster/permissions"
	"hostmaster/shared/failure"
	"hostmaster/shared/timezone"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// Report fields by their JSON name so clients see start_date rather than StartDate.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	rules := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
		"role":  validRole,
		"date":  validDate,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

func validRole(field val.FieldLevel) bool {
	_, err := permissions.ParseRole(field.Field().String())

	return err == nil
}

func validDate(field val.FieldLevel) bool {
	_, err := timezone.ParseDate(field.Field().String())

	return err == nil
}

// Validate decodes a JSON body into data and validates it. Both malformed JSON and
// rule violations come back as a 400 failure.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required") //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
