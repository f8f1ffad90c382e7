package service

import (
	"context"
	"log/slog"
	"strings"

	"gw-converter-cli/internal/api"
	"gw-converter-cli/internal/models"
)

type History interface {
	LoadHistory(ctx context.Context) ([]models.ConversionRecord, error)
}

// HistoryService загружает историю конвертаций; фильтрация и пагинация
// выполняются локально чистыми функциями Filter и Paginate.
type HistoryService struct {
	client api.Client
	log    *slog.Logger
}

func NewHistoryService(client api.Client, log *slog.Logger) *HistoryService {
	return &HistoryService{
		client: client,
		log:    log,
	}
}

func (s *HistoryService) LoadHistory(ctx context.Context) ([]models.ConversionRecord, error) {
	const op = "service.LoadHistory"

	var records []models.ConversionRecord
	if err := s.client.Get(ctx, "/currency/historic", &records); err != nil {
		s.log.Warn("не удалось загрузить историю",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.log.Info("история загружена", slog.String("op", op), slog.Int("count", len(records)))
	return records, nil
}

// Filter оставляет записи, у которых идентификатор пользователя или один из
// кодов валют содержит term без учёта регистра. Пустой term возвращает всё.
func Filter(records []models.ConversionRecord, term string) []models.ConversionRecord {
	if term == "" {
		return records
	}
	term = strings.ToLower(term)

	filtered := make([]models.ConversionRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.UserID), term) ||
			strings.Contains(strings.ToLower(r.CurrencyOrigin), term) ||
			strings.Contains(strings.ToLower(r.CurrencyDestiny), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Paginate вырезает страницу фиксированного размера. Номер страницы вне
// диапазона прижимается к [1, totalPages].
func Paginate(records []models.ConversionRecord, page, pageSize int) models.HistoryPage {
	if pageSize <= 0 {
		pageSize = 10
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return models.HistoryPage{
		Records:    records[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}
}
