package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"gw-converter-cli/internal/custom_err"
	"gw-converter-cli/internal/models"
)

// Store хранит токен сессии и переживает перезапуск процесса через файл.
// Токен является единственным персистентным атрибутом сессии; признак
// аутентификации выводится из его наличия.
type Store struct {
	mu       sync.Mutex
	token    string
	filePath string
	log      *slog.Logger
}

type tokenFile struct {
	Token string `json:"token"`
}

// NewStore загружает сохранённый токен, если файл существует.
func NewStore(filePath string, log *slog.Logger) (*Store, error) {
	const op = "session.NewStore"

	s := &Store{
		filePath: filePath,
		log:      log,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		log.Warn("файл токена повреждён, сессия сброшена",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return s, nil
	}
	s.token = tf.Token

	return s, nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s.save()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return s.save()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Claims разбирает полезную нагрузку токена без проверки подписи.
// Подпись проверяет бэкенд; клиенту claims нужны только для отображения
// и предупреждения об истёкшем сроке.
func (s *Store) Claims() (*models.SessionClaims, error) {
	const op = "session.Claims"

	token := s.Token()
	if token == "" {
		return nil, custom_err.ErrNoSession
	}

	claims := &models.SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, custom_err.ErrInvalidToken, err.Error())
	}

	return claims, nil
}

func (s *Store) save() error {
	data, err := json.Marshal(tokenFile{Token: s.token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}
