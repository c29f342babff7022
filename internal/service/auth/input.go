package auth

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

const (
	maxFullnameLen = 200
	maxEmailLen    = 254
	maxPasswordLen = 72 // bcrypt ignores anything longer
)

// NewUserInput holds the signup fields.
type NewUserInput struct {
	Fullname string
	Email    string
	Password string
}

func (i NewUserInput) normalized() NewUserInput {
	i.Fullname = strings.TrimSpace(i.Fullname)
	i.Email = strings.TrimSpace(i.Email)
	return i
}

// Validate checks all fields and collects all errors.
func (i NewUserInput) Validate(minPasswordLen int) error {
	var errs []domain.FieldError

	if i.Fullname == "" {
		errs = append(errs, domain.FieldError{Field: "fullname", Message: "required"})
	} else if utf8.RuneCountInString(i.Fullname) > maxFullnameLen {
		errs = append(errs, domain.FieldError{Field: "fullname", Message: "too long"})
	}

	errs = append(errs, validateEmail(i.Email)...)

	switch {
	case i.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	case utf8.RuneCountInString(i.Password) < minPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: "too short"})
	case len(i.Password) > maxPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LoginInput holds parameters for password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RefreshInput holds parameters for token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	switch {
	case email == "":
		return []domain.FieldError{{Field: "email", Message: "required"}}
	case len(email) > maxEmailLen:
		return []domain.FieldError{{Field: "email", Message: "too long"}}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return []domain.FieldError{{Field: "email", Message: "invalid email address"}}
	}
	return nil
}
