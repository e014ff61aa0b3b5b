// handlers реализует REST-эндпойнты каталога поверх сервисного слоя.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pribylovaa/go-pokedex/internal/models"
)

// Service - операции сервисного слоя, которые нужны хендлерам.
type Service interface {
	CreatePokemon(ctx context.Context, draft models.Pokemon) (*models.Pokemon, error)
	Resolve(ctx context.Context, term string) (*models.Pokemon, error)
	UpdatePokemon(ctx context.Context, term string, patch models.PokemonPatch) (*models.Pokemon, error)
	DeletePokemon(ctx context.Context, id string) (*models.Pokemon, error)
	ListPokemon(ctx context.Context, p models.ListParams) ([]models.Pokemon, error)
	ExecuteSeed(ctx context.Context) (*models.SeedResult, error)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc Service
}

func New(svc Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// errTrailingData - после JSON-объекта в теле есть что-то ещё.
var errTrailingData = errors.New("trailing data after json value")

// decodeStrict - строгий JSON-декодер: ровно одно значение без неизвестных полей.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}

	return nil
}
