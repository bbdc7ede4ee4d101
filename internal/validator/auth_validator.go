package validator

import (
	"errors"
	"net/mail"
	"strings"

	"market/internal/usecase"
)

// パスワード最低文字数
const minPasswordLen = 6

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(email string, name string, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	if len(name) > 100 {
		return errors.New("name must not exceed 100 characters")
	}
	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(email string, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email format")
	}
	return nil
}
