// service содержит бизнес-логику pokedex-сервиса.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-pokedex/internal/config"
	"github.com/pribylovaa/go-pokedex/internal/fetch"
	"github.com/pribylovaa/go-pokedex/internal/storage"
)

var (
	// ErrNotFound - запись не найдена ни одной стратегией поиска.
	ErrNotFound = errors.New("not found")
	// ErrConflict - конфликт уникальности (no или name).
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument - неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal - внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
	// ErrFetchFailed - внешний API недоступен или вернул неразборчивый ответ.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrEmptyListing - во внешнем списке нет ни одной валидной записи.
	ErrEmptyListing = errors.New("empty listing")
	// ErrListingTruncated - достигнут seed.max_pages, а next всё ещё задан.
	ErrListingTruncated = errors.New("listing truncated")
)

// ConflictError - конфликт уникальности с ключом записи, на которой он случился.
// errors.Is(err, ErrConflict) == true.
type ConflictError struct {
	No   int
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: no=%d name=%q", ErrConflict, e.No, e.Name)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Service - описывает бизнес-логику pokedex-service.
type Service struct {
	storage storage.Storage
	fetcher fetch.Getter
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, fetcher fetch.Getter, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		fetcher: fetcher,
		cfg:     cfg,
	}
}

// Ping проверяет доступность хранилища (для readiness-проб).
func (s *Service) Ping(ctx context.Context) error {
	const op = "service/service/Ping"

	if err := s.storage.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
