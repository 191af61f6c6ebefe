package studio

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns studio router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListStudios)

	return r
}
