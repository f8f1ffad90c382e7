package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"gw-converter-cli/internal/custom_err"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginRequest запрос на авторизацию
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse ответ на авторизацию
type LoginResponse struct {
	Token string `json:"token"`
}

// SignupRequest запрос на регистрацию
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// SignupResponse подтверждение регистрации, токен не возвращается
type SignupResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionClaims полезная нагрузка JWT токена сессии
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (r LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", custom_err.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

func (r SignupRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", custom_err.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

// validationMessage переводит первую ошибку валидатора в читаемый текст
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "email must be a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
