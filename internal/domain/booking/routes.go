package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router.
func (h *Handler) Routes(identityMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/slots", h.ListSlots)

	r.Group(func(r chi.Router) {
		r.Use(identityMiddleware)
		r.Post("/", h.MakeBooking)
	})

	return r
}
