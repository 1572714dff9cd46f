package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinPostBytes = 1
	MaxPostBytes = 1_048_576 // 1 MiB
)

// PostText is the rule for a post body, sizes in UTF-8 bytes.
var PostText = fmt.Sprintf("required,minbytes=%d,maxbytes=%d", MinPostBytes, MaxPostBytes)

const passwordSpecials = "@$!%*?&"

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails on empty tags or nil funcs
	_ = v.RegisterValidation("minbytes", minBytes)
	_ = v.RegisterValidation("maxbytes", maxBytes)
	_ = v.RegisterValidation("password", strongPassword)

	return &Validator{v: v}
}

// Struct validates s using its `validate` tags.
func (v *Validator) Struct(s any) error {
	return describe("", v.v.Struct(s))
}

// Var validates a single value against tag, name is used in the message.
func (v *Validator) Var(name string, field any, tag string) error {
	return describe(name, v.v.Var(field, tag))
}

// describe turns validator errors into one readable message naming the
// violated constraints.
func describe(name string, err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, message(name, fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(name string, fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = name
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "minbytes":
		return fmt.Sprintf("%s must be at least %s bytes", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "email":
		return field + " is invalid"
	case "password":
		return field + " must contain a lowercase letter, an uppercase letter, a digit and one of " + passwordSpecials
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

func byteLimit(fl validator.FieldLevel) (int, bool) {
	limit, err := strconv.Atoi(fl.Param())
	return limit, err == nil
}

func minBytes(fl validator.FieldLevel) bool {
	limit, ok := byteLimit(fl)
	return ok && len(fl.Field().String()) >= limit
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, ok := byteLimit(fl)
	return ok && len(fl.Field().String()) <= limit
}

func strongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}
