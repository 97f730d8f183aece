// Package validation registers custom binding rules with gin's validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagStrongPassword requires 8+ characters with upper, lower and digit.
const TagStrongPassword = "strongpassword"

// MinPasswordLength is the minimum number of bytes in a password.
const MinPasswordLength = 8

// Register adds the custom rules to v and reports field names by their JSON tag.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(TagStrongPassword, strongPassword); err != nil {
		return fmt.Errorf("register %s: %w", TagStrongPassword, err)
	}
	return nil
}

// RegisterWithGin installs the rules on gin's default validator engine.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

func strongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword reports whether p satisfies the strongpassword rule.
func IsStrongPassword(p string) bool {
	return CheckPassword(p) == nil
}

// CheckPassword describes the first strongpassword requirement p misses, or returns nil.
func CheckPassword(p string) error {
	if len(p) < MinPasswordLength {
		return fmt.Errorf("must be at least %d characters long", MinPasswordLength)
	}
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return errors.New("must contain at least one uppercase letter")
	case !lower:
		return errors.New("must contain at least one lowercase letter")
	case !digit:
		return errors.New("must contain at least one number")
	}
	return nil
}

// Messages flattens validator errors into field -> message pairs keyed by JSON name.
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "must match " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "numeric":
		return "must contain digits only"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case TagStrongPassword:
		return "must be at least 8 characters and contain upper case, lower case and a digit"
	default:
		return "is invalid"
	}
}
