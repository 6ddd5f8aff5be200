package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// RequiredField reports a missing required input field.
func RequiredField(field, jsonName string) *AppError {
	e := NewValidation(jsonName, field+" is required")
	e.HTTPStatus = http.StatusUnprocessableEntity
	return e
}

// InvalidField reports an input field that failed a format or range rule.
func InvalidField(field, jsonName string) *AppError {
	e := NewValidation(jsonName, field+" is invalid")
	e.HTTPStatus = http.StatusUnprocessableEntity
	return e
}

// MapValidationError converts a binding error from Gin's validator into an
// AppError carrying the first offending field (json-tag name).
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		e := errs[0]

		// e.Field() is the json tag name thanks to the
		// RegisterTagNameFunc set up in Init().
		jsonName := e.Field()
		humanReadableField := formatFieldName(jsonName)

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField, jsonName)
		default:
			return InvalidField(humanReadableField, jsonName)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
