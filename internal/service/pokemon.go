package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pribylovaa/go-pokedex/internal/models"
	"github.com/pribylovaa/go-pokedex/internal/pkg/log"
	"github.com/pribylovaa/go-pokedex/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePokemon - бизнес-операция создания записи каталога.
//
// Валидация:
//   - No > 0;
//   - Name нормализуется (trim + lower case) и не должен быть пустым.
//
// Поведение/ошибки:
//   - ErrConflict (*ConflictError с ключом) - запись с таким no или name уже есть;
//   - ErrInternal - прочие ошибки стораджа/БД/контекста.
func (s *Service) CreatePokemon(ctx context.Context, draft models.Pokemon) (*models.Pokemon, error) {
	const op = "service/pokemon/CreatePokemon"

	draft.Name = models.NormalizeName(draft.Name)
	lg := log.From(ctx).With("op", op, "no", draft.No, "name", draft.Name)

	if draft.No <= 0 {
		lg.Warn("invalid argument: no must be positive")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if draft.Name == "" {
		lg.Warn("invalid argument: empty name")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.CreatePokemon(ctx, models.Pokemon{No: draft.No, Name: draft.Name})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("conflict")
			return nil, fmt.Errorf("%s: %w", op, &ConflictError{No: draft.No, Name: draft.Name})
		default:
			lg.Error("storage error on CreatePokemon", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// Resolve ищет запись по неоднозначному терму.
//
// Стратегии в строгом порядке, первая найденная запись возвращается сразу:
//  1. терм (после trim) - целое число в любой записи из numericTerm: поиск по no;
//  2. терм - валидный ObjectID: поиск по id;
//  3. поиск по нормализованному имени.
//
// Ошибка стораджа, отличная от «не найдено», прерывает цепочку (ErrInternal).
// Пустой терм -> ErrNotFound без обращения к хранилищу.
func (s *Service) Resolve(ctx context.Context, term string) (*models.Pokemon, error) {
	const op = "service/pokemon/Resolve"

	trimmed := strings.TrimSpace(term)
	lg := log.From(ctx).With("op", op, "term", term)

	if trimmed == "" {
		lg.Warn("empty term")
		return nil, fmt.Errorf("%s: %w: term %q", op, ErrNotFound, term)
	}

	type stage struct {
		name   string
		lookup func() (*models.Pokemon, error)
	}

	var stages []stage

	if no, ok := numericTerm(trimmed); ok {
		stages = append(stages, stage{"no", func() (*models.Pokemon, error) {
			return s.storage.PokemonByNo(ctx, no)
		}})
	}

	if primitive.IsValidObjectID(trimmed) {
		stages = append(stages, stage{"id", func() (*models.Pokemon, error) {
			return s.storage.PokemonByID(ctx, trimmed)
		}})
	}

	stages = append(stages, stage{"name", func() (*models.Pokemon, error) {
		return s.storage.PokemonByName(ctx, models.NormalizeName(trimmed))
	}})

	for _, st := range stages {
		p, err := st.lookup()
		if err == nil {
			lg.Debug("resolved", "by", st.name, "id", p.ID)
			return p, nil
		}

		if !errors.Is(err, storage.ErrNotFound) {
			lg.Error("storage error on Resolve", "by", st.name, "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Warn("pokemon not found")
	return nil, fmt.Errorf("%s: %w: term %q", op, ErrNotFound, term)
}

// maxExactInt - граница, до которой float64 хранит целые без потерь.
const maxExactInt = 1 << 53

// numericTerm разбирает терм как число: десятичная запись со знаком,
// дробной частью и экспонентой ("+25", "25.0", "1e1") либо 0x/0o/0b без знака ("0x19").
// Номером считается только конечное целое значение.
func numericTerm(s string) (int, bool) {
	if strings.ContainsRune(s, '_') {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}

		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 53)
			if err != nil {
				return 0, false
			}
			return int(n), true
		}
	}

	// ParseFloat понимает ещё и "+0x1p4"; такой терм числом не считаем.
	if strings.ContainsAny(s, "xXpP") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return 0, false
	}

	return int(f), true
}

// UpdatePokemon - частичное обновление записи, найденной через Resolve.
//
// Валидация:
//   - патч не пуст;
//   - No (если передан) > 0;
//   - Name (если передан) нормализуется и не должен быть пустым.
//
// Возвращает состояние до обновления с наложенным патчем (повторно запись не читается).
//
// Поведение/ошибки:
//   - ErrNotFound - терм не найден или запись исчезла до записи;
//   - ErrConflict (*ConflictError с ключом итоговой записи);
//   - ErrInternal - прочие ошибки стораджа.
func (s *Service) UpdatePokemon(ctx context.Context, term string, patch models.PokemonPatch) (*models.Pokemon, error) {
	const op = "service/pokemon/UpdatePokemon"

	lg := log.From(ctx).With("op", op, "term", term)

	if patch.Empty() {
		lg.Warn("invalid argument: empty patch")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if patch.No != nil && *patch.No <= 0 {
		lg.Warn("invalid argument: no must be positive")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if patch.Name != nil {
		name := models.NormalizeName(*patch.Name)
		if name == "" {
			lg.Warn("invalid argument: empty name")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		patch.Name = &name
	}

	current, err := s.Resolve(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := patch.Apply(*current)

	if err := s.storage.UpdatePokemon(ctx, current.ID, patch); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("conflict", "id", current.ID)
			return nil, fmt.Errorf("%s: %w", op, &ConflictError{No: updated.No, Name: updated.Name})
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("pokemon vanished before update", "id", current.ID)
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdatePokemon", "id", current.ID, "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return &updated, nil
}

// DeletePokemon удаляет запись строго по идентификатору (без Resolve)
// и возвращает её снимок.
//
// Поведение/ошибки:
//   - ErrNotFound - пустой, некорректный или отсутствующий id;
//   - ErrInternal - иные ошибки стораджа.
func (s *Service) DeletePokemon(ctx context.Context, id string) (*models.Pokemon, error) {
	const op = "service/pokemon/DeletePokemon"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("empty id")
		return nil, fmt.Errorf("%s: %w: id %q", op, ErrNotFound, id)
	}

	result, err := s.storage.DeletePokemon(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("pokemon not found")
			return nil, fmt.Errorf("%s: %w: id %q", op, ErrNotFound, id)
		default:
			lg.Error("storage error on DeletePokemon", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// ListPokemon - страница каталога в естественном порядке хранилища.
//
// Limit == 0 -> limits.default; Limit > limits.max -> limits.max.
// Отрицательные Limit/Offset -> ErrInvalidArgument.
func (s *Service) ListPokemon(ctx context.Context, p models.ListParams) ([]models.Pokemon, error) {
	const op = "service/pokemon/ListPokemon"

	lg := log.From(ctx).With("op", op, "limit", p.Limit, "offset", p.Offset)

	if p.Limit < 0 || p.Offset < 0 {
		lg.Warn("invalid argument: negative limit/offset")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if p.Limit == 0 {
		p.Limit = s.cfg.Limits.Default
	}

	if s.cfg.Limits.Max > 0 && p.Limit > s.cfg.Limits.Max {
		p.Limit = s.cfg.Limits.Max
	}

	items, err := s.storage.ListPokemon(ctx, p)
	if err != nil {
		lg.Error("storage error on ListPokemon", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return items, nil
}
