package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request DTO and returns the first violation as a
// human-readable message. Only the first failure is reported; callers
// surface it verbatim as a 400.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	return fmt.Errorf("%s", message(errs[0]))
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters long.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field cannot be longer than %s characters.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func fieldName(fe validator.FieldError) string {
	// Lower-case the struct field to match the JSON casing used in requests.
	name := fe.Field()
	if name == "" {
		return "input"
	}
	return strings.ToLower(name[:1]) + name[1:]
}
