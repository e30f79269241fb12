package auth

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+[0-9]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// International format: a leading "+" followed by digits only
	_ = v.RegisterValidation("intlphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

type VerificationRequest struct {
	PhoneNumber string `validate:"required,intlphone"`
	DisplayName string `validate:"required"`
}

type ConfirmationRequest struct {
	Code string `validate:"required,number"`
}

func ValidateVerification(req VerificationRequest) error {
	return validate.Struct(req)
}

func ValidateConfirmation(req ConfirmationRequest) error {
	return validate.Struct(req)
}

// ValidatePhoneNumber checks a phone number on its own, used by the
// identity provider which never sees the display name.
func ValidatePhoneNumber(phoneNumber string) error {
	return validate.Var(phoneNumber, "required,intlphone")
}
