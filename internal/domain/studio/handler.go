package studio

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/studiobook/studiobook-api/internal/pkg/response"
)

// Handler handles studio HTTP requests.
type Handler struct {
	catalog Catalog
}

// NewHandler creates a new studio handler.
func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListStudios handles GET /api/v1/studios
func (h *Handler) ListStudios(w http.ResponseWriter, r *http.Request) {
	studios, err := h.catalog.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list studios")
		response.InternalError(w)
		return
	}

	resp := make([]StudioResponse, len(studios))
	for i, s := range studios {
		resp[i] = s.ToResponse()
	}

	response.OK(w, resp)
}
