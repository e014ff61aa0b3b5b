package handlers

import (
	"time"

	"github.com/pribylovaa/go-pokedex/internal/models"
)

// PokemonResponse - запись каталога в ответе.
type PokemonResponse struct {
	ID        string    `json:"id"`
	No        int       `json:"no"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePokemonRequest - тело POST /pokemon.
type CreatePokemonRequest struct {
	No   int    `json:"no"`
	Name string `json:"name"`
}

// UpdatePokemonRequest - тело PATCH /pokemon/{term}; отсутствующее поле не меняется.
type UpdatePokemonRequest struct {
	No   *int    `json:"no,omitempty"`
	Name *string `json:"name,omitempty"`
}

// ListPokemonResponse - страница каталога.
type ListPokemonResponse struct {
	Items []PokemonResponse `json:"items"`
}

// SeedResponse - итог наполнения каталога.
type SeedResponse struct {
	Generation string `json:"generation"`
	Pages      int    `json:"pages"`
	Fetched    int    `json:"fetched"`
	Skipped    int    `json:"skipped"`
	Inserted   int    `json:"inserted"`
	DurationMS int64  `json:"duration_ms"`
}

func pokemonFromModel(p *models.Pokemon) PokemonResponse {
	return PokemonResponse{
		ID:        p.ID,
		No:        p.No,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r CreatePokemonRequest) toModel() models.Pokemon {
	return models.Pokemon{No: r.No, Name: r.Name}
}

func (r UpdatePokemonRequest) toPatch() models.PokemonPatch {
	return models.PokemonPatch{No: r.No, Name: r.Name}
}

func listFromModels(items []models.Pokemon) ListPokemonResponse {
	out := ListPokemonResponse{Items: make([]PokemonResponse, 0, len(items))}
	for i := range items {
		out.Items = append(out.Items, pokemonFromModel(&items[i]))
	}
	return out
}

func seedFromModel(res *models.SeedResult) SeedResponse {
	return SeedResponse{
		Generation: res.Generation,
		Pages:      res.Pages,
		Fetched:    res.Fetched,
		Skipped:    res.Skipped,
		Inserted:   res.Inserted,
		DurationMS: res.Duration.Milliseconds(),
	}
}
