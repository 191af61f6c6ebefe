package freeslot

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns free-slot router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetFreeSlots)

	return r
}
