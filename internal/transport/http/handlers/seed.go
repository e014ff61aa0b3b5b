package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-pokedex/internal/transport/http/errors"
)

func (h *Handlers) ExecuteSeed(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ExecuteSeed(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, seedFromModel(res))
}
