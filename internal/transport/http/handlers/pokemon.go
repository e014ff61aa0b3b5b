package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-pokedex/internal/models"
	"github.com/pribylovaa/go-pokedex/internal/service"
	apierrors "github.com/pribylovaa/go-pokedex/internal/transport/http/errors"
)

func (h *Handlers) CreatePokemon(w http.ResponseWriter, r *http.Request) {
	var in CreatePokemonRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	p, err := h.svc.CreatePokemon(r.Context(), in.toModel())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, pokemonFromModel(p))
}

func (h *Handlers) ListPokemon(w http.ResponseWriter, r *http.Request) {
	var params models.ListParams

	q := r.URL.Query()
	for key, dst := range map[string]*int{"limit": &params.Limit, "offset": &params.Offset} {
		v := q.Get(key)
		if v == "" {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			apierrors.WriteError(w, r, service.ErrInvalidArgument)
			return
		}

		*dst = n
	}

	// limit=0 в запросе не означает «дефолт»: требуем положительное значение.
	if q.Has("limit") && params.Limit <= 0 {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	items, err := h.svc.ListPokemon(r.Context(), params)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFromModels(items))
}

func (h *Handlers) GetPokemon(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Resolve(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pokemonFromModel(p))
}

func (h *Handlers) UpdatePokemon(w http.ResponseWriter, r *http.Request) {
	var in UpdatePokemonRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	p, err := h.svc.UpdatePokemon(r.Context(), chi.URLParam(r, "term"), in.toPatch())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pokemonFromModel(p))
}

func (h *Handlers) DeletePokemon(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.DeletePokemon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pokemonFromModel(p))
}
