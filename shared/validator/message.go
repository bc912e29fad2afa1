package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be at least {param}",
	"max":      "{field} must be at most {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"nefield":  "{field} must differ from {param}",
	"role":     "{field} must be one of admin employee client",
	"date":     "{field} must be a date in YYYY-MM-DD format",
}

// message renders the first failed rule. Length rules on strings mention characters.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		param := valErr.Param()
		if valErr.Tag() == "nefield" {
			param = fieldName(param)
		}

		text := strings.NewReplacer("{field}", valErr.Field(), "{param}", param).Replace(template)
		if (valErr.Tag() == "min" || valErr.Tag() == "max") && valErr.Kind().String() == "string" {
			text += " characters"
		}

		return text
	}

	return valErrors.Error()
}

// fieldName converts a Go field name such as CurrentPassword to current_password.
func fieldName(goName string) string {
	var b strings.Builder

	for i, r := range goName {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}

			r += 'a' - 'A'
		}

		b.WriteRune(r)
	}

	return b.String()
}
