// Package validation checks request bodies against their struct tags and
// reports failures field by field in the caller's language.
package validation

import (
	"errors"
	"reflect"
	"strings"

	apperrors "otpauth/internal/errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns a BadRequest listing every failed field.
func Struct(lang language.Tag, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.Internal("failed to validate request", err)
	}

	fields := make([]apperrors.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(lang, fe),
		})
	}
	return apperrors.Validation(fields)
}

func message(lang language.Tag, fe validator.FieldError) string {
	field := fe.Field()
	if base, _ := lang.Base(); base.String() == "it" {
		switch fe.Tag() {
		case "required":
			return field + " è obbligatorio"
		case "email":
			return "formato email non valido"
		case "min":
			return field + " deve contenere almeno " + fe.Param() + " caratteri"
		case "max":
			return field + " deve contenere al massimo " + fe.Param() + " caratteri"
		case "len":
			return field + " deve contenere esattamente " + fe.Param() + " caratteri"
		case "numeric":
			return field + " deve contenere solo numeri"
		default:
			return field + " non è valido"
		}
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "len":
		return field + " must be exactly " + fe.Param() + " characters"
	case "numeric":
		return field + " must contain only numbers"
	default:
		return field + " is invalid"
	}
}
