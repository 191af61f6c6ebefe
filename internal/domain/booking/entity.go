package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/studiobook/studiobook-api/internal/pkg/interval"
)

// Booking is a set of time slots created together by one user. Bookings
// are immutable once created.
type Booking struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`

	Slots []TimeSlot `db:"-"`
}

// TimeSlot is a persisted booked interval for one studio. For any studio
// the persisted slots are pairwise disjoint half-open [start, end) ranges;
// the time_slots table enforces this with an exclusion constraint.
type TimeSlot struct {
	ID          uuid.UUID       `db:"id"`
	BookingID   uuid.UUID       `db:"booking_id"`
	StudioID    string          `db:"studio_id"`
	StartTime   time.Time       `db:"start_time"`
	EndTime     time.Time       `db:"end_time"`
	PeopleCount int             `db:"people_count"`
	Price       decimal.Decimal `db:"price"`
	CreatedAt   time.Time       `db:"created_at"`
}

// Interval returns the slot's booked range as a value.
func (s *TimeSlot) Interval() interval.Interval {
	return interval.New(s.StartTime, s.EndTime)
}

// TimeSlotResponse for API response
type TimeSlotResponse struct {
	ID          string          `json:"id"`
	StudioID    string          `json:"studio_id"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	PeopleCount int             `json:"people_count"`
	Price       decimal.Decimal `json:"price"`
}

// BookingResponse for API response
type BookingResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	CreatedAt time.Time          `json:"created_at"`
	TimeSlots []TimeSlotResponse `json:"time_slots"`
}

// ToResponse converts entity to response
func (b *Booking) ToResponse() *BookingResponse {
	slots := make([]TimeSlotResponse, len(b.Slots))
	for i, s := range b.Slots {
		slots[i] = TimeSlotResponse{
			ID:          s.ID.String(),
			StudioID:    s.StudioID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			PeopleCount: s.PeopleCount,
			Price:       s.Price,
		}
	}
	return &BookingResponse{
		ID:        b.ID.String(),
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
		TimeSlots: slots,
	}
}
