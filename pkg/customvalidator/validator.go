package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует доменные правила валидации.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("phone", isPhoneNumber)
}

var phoneRegex = regexp.MustCompile(`^\+?\d{7,15}$`)

func isPhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
