package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gw-converter-cli/internal/api"
	"gw-converter-cli/internal/custom_err"
	"gw-converter-cli/internal/models"
)

type Currency interface {
	LoadCurrencyTypes(ctx context.Context) ([]models.CurrencyType, error)
	Catalog() []models.CurrencyType
	Convert(ctx context.Context, origin, destiny, amount string) (*models.ConversionResult, error)
	Result() *models.ConversionResult
}

// CurrencyService загружает каталог валют и выполняет конвертации.
// Каталог запрашивается один раз за сеанс; при ошибке он остаётся пустым,
// и каталожные команды просто сообщают об этом без падения приложения.
type CurrencyService struct {
	client api.Client

	mu         sync.Mutex
	catalog    []models.CurrencyType
	result     *models.ConversionResult
	inFlight   bool
	generation uint64

	log *slog.Logger
}

func NewCurrencyService(client api.Client, log *slog.Logger) *CurrencyService {
	return &CurrencyService{
		client: client,
		log:    log,
	}
}

// LoadCurrencyTypes возвращает каталог, загружая его при первом обращении.
func (s *CurrencyService) LoadCurrencyTypes(ctx context.Context) ([]models.CurrencyType, error) {
	const op = "service.LoadCurrencyTypes"

	s.mu.Lock()
	if len(s.catalog) > 0 {
		cached := make([]models.CurrencyType, len(s.catalog))
		copy(cached, s.catalog)
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	var types []models.CurrencyType
	if err := s.client.Get(ctx, "/currency/types", &types); err != nil {
		s.log.Warn("не удалось загрузить каталог валют",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	s.catalog = types
	s.mu.Unlock()

	s.log.Info("каталог валют загружен", slog.String("op", op), slog.Int("count", len(types)))
	return types, nil
}

func (s *CurrencyService) Catalog() []models.CurrencyType {
	s.mu.Lock()
	defer s.mu.Unlock()
	cached := make([]models.CurrencyType, len(s.catalog))
	copy(cached, s.catalog)
	return cached
}

// Convert проверяет вход против каталога и отправляет запрос на конвертацию.
// Повторная отправка во время выполнения отклоняется, а запоздавший ответ
// вытесненного запроса не перезаписывает текущий результат: сохраняется
// только ответ последнего поколения.
func (s *CurrencyService) Convert(ctx context.Context, origin, destiny, amount string) (*models.ConversionResult, error) {
	const op = "service.Convert"

	req := models.ConversionRequest{
		CurrencyOrigin:  origin,
		CurrencyDestiny: destiny,
		Amount:          amount,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if len(s.catalog) == 0 {
		s.mu.Unlock()
		return nil, custom_err.ErrEmptyCatalog
	}
	if !s.hasCurrencyLocked(origin) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is not in the catalog", custom_err.ErrInvalidCurrency, origin)
	}
	if !s.hasCurrencyLocked(destiny) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is not in the catalog", custom_err.ErrInvalidCurrency, destiny)
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, custom_err.ErrConversionInFlight
	}
	s.inFlight = true
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	var result models.ConversionResult
	err := s.client.PostData(ctx, "/currency/search", req, &result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		// Прежний результат остаётся на месте.
		s.log.Warn("конвертация не удалась",
			slog.String("op", op),
			slog.String("origin", origin),
			slog.String("destiny", destiny),
			slog.String("error", err.Error()))
		return nil, err
	}

	if gen != s.generation {
		s.log.Info("ответ вытесненного запроса отброшен",
			slog.String("op", op),
			slog.Uint64("generation", gen))
		return &result, nil
	}

	s.result = &result
	s.log.Info("конвертация выполнена",
		slog.String("op", op),
		slog.String("transaction_id", result.TransactionID),
		slog.Float64("value_origin", result.ValueOrigin),
		slog.Float64("value_destiny", result.ValueDestiny))

	return &result, nil
}

// Result возвращает последний сохранённый результат конвертации.
func (s *CurrencyService) Result() *models.ConversionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

func (s *CurrencyService) hasCurrencyLocked(code string) bool {
	for _, c := range s.catalog {
		if c.Currency == code {
			return true
		}
	}
	return false
}
