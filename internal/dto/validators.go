package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// krPhonePattern matches Korean phone numbers the way the original forms
// accepted them: digits only, leading zero, 9 to 11 digits (e.g. 01011112222).
var krPhonePattern = regexp.MustCompile(`^0\d{8,10}$`)

// RegisterCustomValidators installs the request validators this API relies on
// beyond the built-in tags. Call once at startup with gin's binding engine.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("krphone", func(fl validator.FieldLevel) bool {
		return krPhonePattern.MatchString(fl.Field().String())
	})
}
