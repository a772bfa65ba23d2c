package auth

import (
	"unicode"

	"github.com/go-playground/validator/v10"

	"tnkr-backend/errors"
)

var validate = validator.New()

// RegisterRequest carries the registration form fields. Role is optional
// and defaults to COLLECTOR in the service layer.
type RegisterRequest struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Phone     string `validate:"omitempty,e164"`
	Username  string `validate:"required,min=3,max=32"`
	Email     string `validate:"required,email"`
	Role      string `validate:"omitempty,oneof=COLLECTOR TECHNICIAN"`
	Password  string `validate:"required,min=12,max=72"`
}

func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	if !isPasswordComplex(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// ValidatePassword applies the same complexity rules to a password on its
// own, used by the reset flow where no full form is submitted.
func ValidatePassword(password string) error {
	if len(password) < 12 || len(password) > 72 || !isPasswordComplex(password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
