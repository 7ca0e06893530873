package domain

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the minimal local@domain shape accepted for user emails.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator configured with the "binding" tag so the
// same struct tags serve gin and non-HTTP callers.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.SetTagName("binding")
		if err := RegisterRules(v); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// RegisterRules installs the custom rules and JSON field naming on v.
func RegisterRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
}

// ValidateStruct validates s and converts failures into ValidationErrors.
func ValidateStruct(s any) error {
	return TranslateValidation(Validator().Struct(s))
}

// TranslateValidation converts validator output (also what gin binding returns)
// into ValidationErrors with user-facing messages. Other errors pass through.
func TranslateValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: fe.Field(), Msg: fieldMessage(fe), Err: fe})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "basic_email", "email":
		return "Invalid email address"
	case "oneof":
		return "Invalid " + strings.ToLower(label)
	default:
		return "Invalid " + strings.ToLower(label)
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
