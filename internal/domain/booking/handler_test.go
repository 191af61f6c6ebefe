package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studiobook/studiobook-api/internal/middleware"
)

func newTestRouter(repo *fakeRepo) chi.Router {
	handler := NewHandler(newTestService(repo))

	r := chi.NewRouter()
	r.Mount("/bookings", handler.Routes(middleware.Identity()))
	return r
}

func postBooking(t *testing.T, router http.Handler, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMakeBookingHandler_RequiresIdentity(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	rec := postBooking(t, router, "", `{"slots":[]}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMakeBookingHandler_InvalidJSON(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	rec := postBooking(t, router, "user-1", `{"slots":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMakeBookingHandler_EmptySlots(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	rec := postBooking(t, router, "user-1", `{"slots":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}
}

func TestMakeBookingHandler_UnknownStudio(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	body := `{"slots":[{"studio_id":"ghost","start_time":"2023-01-01T10:00:00Z","end_time":"2023-01-01T12:00:00Z","people_count":2}]}`
	rec := postBooking(t, router, "user-1", body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "ghost") {
		t.Errorf("response should name the missing studio, body: %s", rec.Body.String())
	}
}

func TestMakeBookingHandler_Conflict(t *testing.T) {
	repo := &fakeRepo{existing: []TimeSlot{
		{ID: uuid.New(), StudioID: "studio-1", StartTime: at(10, 0), EndTime: at(12, 0)},
	}}
	router := newTestRouter(repo)

	body := `{"slots":[{"studio_id":"studio-1","start_time":"2023-01-01T11:00:00Z","end_time":"2023-01-01T13:00:00Z","people_count":2}]}`
	rec := postBooking(t, router, "user-1", body)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body: %s", rec.Code, rec.Body.String())
	}
}

func TestMakeBookingHandler_Created(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	body := `{"slots":[{"studio_id":"studio-1","start_time":"2023-01-01T13:00:00Z","end_time":"2023-01-01T15:00:00Z","people_count":2}]}`
	rec := postBooking(t, router, "user-1", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			UserID    string `json:"user_id"`
			TimeSlots []struct {
				StudioID string          `json:"studio_id"`
				Price    json.RawMessage `json:"price"`
			} `json:"time_slots"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.Data.UserID != "user-1" {
		t.Errorf("unexpected envelope: %s", rec.Body.String())
	}
	if len(resp.Data.TimeSlots) != 1 {
		t.Fatalf("got %d slots, want 1", len(resp.Data.TimeSlots))
	}
	// 2 hours at rate 50.
	if got := string(resp.Data.TimeSlots[0].Price); got != `"100"` && got != "100" {
		t.Errorf("price = %s, want 100", got)
	}
}
