package service

import (
	"context"
	"fmt"
	"log/slog"

	"gw-converter-cli/internal/api"
	"gw-converter-cli/internal/custom_err"
	"gw-converter-cli/internal/models"
)

// SessionStore управляет токеном текущей сессии.
type SessionStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
	IsAuthenticated() bool
	Claims() (*models.SessionClaims, error)
}

type Auth interface {
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, password, name string) (*models.SignupResponse, error)
	Logout() error
}

type AuthService struct {
	client api.Client
	store  SessionStore
	log    *slog.Logger
}

func NewAuthService(client api.Client, store SessionStore, log *slog.Logger) *AuthService {
	return &AuthService{
		client: client,
		store:  store,
		log:    log,
	}
}

// Login отправляет учётные данные и при успехе сохраняет выданный токен.
// При ошибке прежнее состояние сессии не меняется.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	const op = "service.Login"

	req := models.LoginRequest{
		Email:    email,
		Password: password,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	var resp models.LoginResponse
	if err := s.client.Post(ctx, "/auth/login", req, &resp); err != nil {
		s.log.Warn("авторизация не удалась",
			slog.String("op", op),
			slog.String("email", email),
			slog.String("error", err.Error()))
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("%s: %w: backend returned no token", op, custom_err.ErrInvalidToken)
	}

	if err := s.store.SetToken(resp.Token); err != nil {
		return fmt.Errorf("%s: failed to persist token: %w", op, err)
	}

	s.log.Info("пользователь авторизован", slog.String("op", op), slog.String("email", email))
	return nil
}

// Signup регистрирует пользователя. Пароль короче 6 символов отклоняется
// локально, без обращения к бэкенду. Успешная регистрация не создаёт
// сессию: бэкенд возвращает подтверждение без токена, войти нужно отдельно.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*models.SignupResponse, error) {
	const op = "service.Signup"

	req := models.SignupRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp models.SignupResponse
	if err := s.client.Post(ctx, "/auth/signup", req, &resp); err != nil {
		s.log.Warn("регистрация не удалась",
			slog.String("op", op),
			slog.String("email", email),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.log.Info("пользователь зарегистрирован", slog.String("op", op), slog.String("email", resp.Email))
	return &resp, nil
}

// Logout сбрасывает локальную сессию, бэкенд не вызывается.
func (s *AuthService) Logout() error {
	const op = "service.Logout"

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("сессия завершена", slog.String("op", op))
	return nil
}
