package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"gw-converter-cli/internal/custom_err"
)

// TokenSource отдаёт текущий токен сессии; пустая строка означает её отсутствие.
type TokenSource interface {
	Token() string
}

type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	PostData(ctx context.Context, path string, body, out any) error
}

// HTTPClient обёртка над REST API бэкенда: базовый URL, фиксированный
// таймаут, подстановка Bearer токена и перехват ответов 401/403.
// Сессия и колбэк инвалидации передаются при конструировании,
// глобального состояния у клиента нет.
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	tokens       TokenSource
	onInvalidate func()
	log          *slog.Logger
}

// envelope обёртка {"data": ...}, в которой бэкенд возвращает полезную нагрузку
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ResponseError ошибка уровня API с сообщением из тела ответа
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *ResponseError) Unwrap() error {
	return custom_err.ErrServerMessage
}

func NewHTTPClient(
	baseURL string,
	timeout time.Duration,
	tokens TokenSource,
	onInvalidate func(),
	log *slog.Logger,
) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens:       tokens,
		onInvalidate: onInvalidate,
		log:          log,
	}
}

// Get выполняет GET и распаковывает конверт {"data": ...} в out.
func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return unmarshalEnvelope(body, out)
}

// Post выполняет POST и декодирует тело ответа в out без конверта.
func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	respBody, err := c.doJSON(ctx, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// PostData выполняет POST и распаковывает конверт {"data": ...} в out.
func (c *HTTPClient) PostData(ctx context.Context, path string, body, out any) error {
	respBody, err := c.doJSON(ctx, path, body)
	if err != nil {
		return err
	}
	return unmarshalEnvelope(respBody, out)
}

func (c *HTTPClient) doJSON(ctx context.Context, path string, body any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", custom_err.ErrInvalidInput, err.Error())
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(encoded))
}

// do единая точка отправки запросов: заголовки, токен, классификация ошибок.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	const op = "api.do"

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			c.log.Warn("запрос превысил таймаут",
				slog.String("op", op),
				slog.String("method", method),
				slog.String("path", path))
			return nil, fmt.Errorf("%s %s: %w", method, path, custom_err.ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	if duration > 3*time.Second {
		c.log.Warn("медленный запрос к бэкенду",
			slog.String("op", op),
			slog.String("path", path),
			slog.Duration("duration", duration))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Сессия недействительна: сбрасываем её до того, как ошибка уйдёт наверх.
		c.log.Info("сессия инвалидирована бэкендом",
			slog.String("op", op),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		if c.onInvalidate != nil {
			c.onInvalidate()
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, custom_err.ErrUnauthorized)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			Code:       eb.Error,
			Message:    eb.Message,
		}
	}

	return respBody, nil
}

func unmarshalEnvelope(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	if env.Data == nil {
		// Бэкенд ответил без конверта, декодируем тело как есть.
		return json.Unmarshal(body, out)
	}
	return json.Unmarshal(env.Data, out)
}

// HandleAPIError сводит любую ошибку запроса к одному читаемому сообщению:
// сообщение из тела ответа, затем транспортная ошибка, затем общий текст.
func HandleAPIError(err error) string {
	if err == nil {
		return ""
	}

	var respErr *ResponseError
	switch {
	case errors.As(err, &respErr):
		return respErr.Error()
	case errors.Is(err, custom_err.ErrUnauthorized):
		return "Session expired, please log in again"
	case errors.Is(err, custom_err.ErrTimeout):
		return "Request timed out, please try again"
	case errors.Is(err, custom_err.ErrInvalidInput),
		errors.Is(err, custom_err.ErrInvalidAmount),
		errors.Is(err, custom_err.ErrInvalidCurrency):
		return err.Error()
	}

	var uerr *url.Error
	if errors.As(err, &uerr) {
		return "Cannot reach the server: " + uerr.Err.Error()
	}

	return "Something went wrong, please try again"
}
