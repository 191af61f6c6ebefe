package freeslot

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/studiobook/studiobook-api/internal/domain/studio"
	"github.com/studiobook/studiobook-api/internal/pkg/response"
)

// Handler handles free-slot HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new free-slot handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetFreeSlots handles GET /api/v1/free-slots
// Query params: from, to (RFC3339, required), studio_ids (comma separated, optional).
func (h *Handler) GetFreeSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be RFC3339")
		return
	}
	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be RFC3339")
		return
	}

	var studioIDs []string
	if ids := q.Get("studio_ids"); ids != "" {
		studioIDs = strings.Split(ids, ",")
	}

	freeSlots, err := h.service.GetFreeSlots(r.Context(), from, to, studioIDs)
	if err != nil {
		var unknownStudios *studio.UnknownStudiosError
		switch {
		case errors.Is(err, ErrInvalidWindow):
			response.BadRequest(w, err.Error())
		case errors.As(err, &unknownStudios):
			response.ValidationError(w, map[string]string{"studio_ids": unknownStudios.Error()})
		default:
			log.Error().Err(err).Msg("Free-slot query failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, FreeSlotsResponse{FreeSlots: freeSlots})
}
