package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a "field" -> "message" map of all failures.
type ValidationError struct {
	Errors map[string]string

	// missing lists the fields that failed the "required" tag, so the HTTP
	// boundary can enumerate them in a single message.
	missing []string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// MissingFields returns the names of required fields that were absent,
// sorted for stable messages.
func (e *ValidationError) MissingFields() []string {
	out := append([]string(nil), e.missing...)
	sort.Strings(out)
	return out
}

// Message renders the client-facing validation message. Missing required
// fields are enumerated by name; other failures fall back to per-field text.
func (e *ValidationError) Message() string {
	if len(e.missing) > 0 {
		return "Missing required fields: " + strings.Join(e.MissingFields(), ", ")
	}
	return e.Error()
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report JSON tag names instead of Go struct field names, so error
	// messages match the request payload shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

// Validate checks the struct and returns a *ValidationError on failure.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	var missing []string

	for _, fe := range validationErrors {
		fieldName := fe.Field()
		customErrors[fieldName] = v.getErrorMessage(fe)
		if fe.Tag() == "required" {
			missing = append(missing, fieldName)
		}
	}

	return &ValidationError{Errors: customErrors, missing: missing}
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
