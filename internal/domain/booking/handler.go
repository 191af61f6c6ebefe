package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/studiobook/studiobook-api/internal/domain/studio"
	"github.com/studiobook/studiobook-api/internal/middleware"
	"github.com/studiobook/studiobook-api/internal/pkg/response"
	"github.com/studiobook/studiobook-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// MakeBooking handles POST /api/v1/bookings
// Requires a requester identity - extracts UserID from context.
func (h *Handler) MakeBooking(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Requester identity missing")
		return
	}

	var req MakeBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	booking, err := h.service.MakeBooking(r.Context(), userID, &req)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	response.Created(w, booking.ToResponse())
}

// ListSlots handles GET /api/v1/bookings/slots
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSlotFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	slots, err := h.service.ListSlots(r.Context(), filter)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	resp := TimeSlotsResponse{TimeSlots: make([]TimeSlotResponse, len(slots))}
	for i, s := range slots {
		resp.TimeSlots[i] = TimeSlotResponse{
			ID:          s.ID.String(),
			StudioID:    s.StudioID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			PeopleCount: s.PeopleCount,
			Price:       s.Price,
		}
	}

	response.OK(w, resp)
}

func parseSlotFilter(r *http.Request) (*SlotFilter, error) {
	q := r.URL.Query()

	filter := &SlotFilter{
		UserID: q.Get("user_id"),
	}

	if ids := q.Get("studio_ids"); ids != "" {
		filter.StudioIDs = strings.Split(ids, ",")
	}

	if raw := q.Get("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("start_date must be RFC3339")
		}
		filter.StartDate = t.UTC()
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New("end_date must be RFC3339")
		}
		filter.EndDate = t.UTC()
	}

	if raw := q.Get("people_count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, errors.New("people_count must be a positive integer")
		}
		filter.PeopleCount = n
	}

	filter.Page, _ = strconv.Atoi(q.Get("page"))
	if filter.Page <= 0 {
		filter.Page = 1
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return filter, nil
}

// writeBookingError maps domain errors onto HTTP responses.
func writeBookingError(w http.ResponseWriter, err error) {
	var (
		invalidInterval *InvalidIntervalError
		unknownStudios  *studio.UnknownStudiosError
		overlap         *OverlappingSlotError
	)

	switch {
	case errors.Is(err, ErrEmptySlots):
		response.BadRequest(w, err.Error())
	case errors.As(err, &invalidInterval):
		response.ValidationError(w, map[string]string{"slots": err.Error()})
	case errors.As(err, &unknownStudios):
		response.ValidationError(w, map[string]string{"studio_ids": unknownStudios.Error()})
	case errors.As(err, &overlap):
		response.Conflict(w, overlap.Error())
	default:
		log.Error().Err(err).Msg("Booking request failed")
		response.InternalError(w)
	}
}
