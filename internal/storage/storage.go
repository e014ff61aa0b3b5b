package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-pokedex/internal/models"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict - конфликт уникальности (no или name).
	ErrConflict = errors.New("conflict")
)

// DuplicateKeyError - нарушение уникального индекса с ключом, на котором случился конфликт.
// errors.Is(err, ErrConflict) == true.
type DuplicateKeyError struct {
	No   int
	Name string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key {no: %d, name: %q}", ErrConflict, e.No, e.Name)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrConflict
}

// Storage описывает операции над каталогом.
//
//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks
type Storage interface {
	// CreatePokemon вставляет запись. Name ожидается уже нормализованным.
	// Игнорируемые/вычисляемые хранилищем поля: ID, CreatedAt, UpdatedAt.
	// Возможные ошибки: *DuplicateKeyError (ErrConflict).
	CreatePokemon(ctx context.Context, p models.Pokemon) (*models.Pokemon, error)

	// PokemonByNo - поиск по номеру. Если записи нет - ErrNotFound.
	PokemonByNo(ctx context.Context, no int) (*models.Pokemon, error)

	// PokemonByID - поиск по идентификатору.
	// Некорректный формат id трактуется как «нет такой записи» (ErrNotFound).
	PokemonByID(ctx context.Context, id string) (*models.Pokemon, error)

	// PokemonByName - поиск по точному (нормализованному) имени. Если записи нет - ErrNotFound.
	PokemonByName(ctx context.Context, name string) (*models.Pokemon, error)

	// UpdatePokemon применяет патч к записи id.
	// Ошибки: ErrNotFound, *DuplicateKeyError (ErrConflict).
	UpdatePokemon(ctx context.Context, id string, patch models.PokemonPatch) error

	// DeletePokemon удаляет запись по id и возвращает её снимок.
	// Если запись не найдена (или id некорректен) - ErrNotFound.
	DeletePokemon(ctx context.Context, id string) (*models.Pokemon, error)

	// ListPokemon возвращает срез каталога в естественном порядке хранилища.
	// Limit > 0 обязателен (дефолт подставляет сервисный слой).
	ListPokemon(ctx context.Context, p models.ListParams) ([]models.Pokemon, error)

	// ReplaceAll атомарно заменяет всё содержимое каталога на drafts.
	// При любой ошибке текущий каталог остаётся без изменений.
	// Возвращает число вставленных записей. Ошибки: *DuplicateKeyError (ErrConflict).
	ReplaceAll(ctx context.Context, drafts []models.Pokemon) (int, error)

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
