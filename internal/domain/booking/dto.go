package booking

import "time"

// SlotRequest represents one requested slot inside a booking.
type SlotRequest struct {
	StudioID    string    `json:"studio_id" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	PeopleCount int       `json:"people_count" validate:"required,min=1"`
}

// MakeBookingRequest represents booking creation request from frontend.
type MakeBookingRequest struct {
	Slots []SlotRequest `json:"slots" validate:"dive"`
}

// SlotFilter narrows a persisted time slot listing. All fields are
// optional; zero time values mean no bound.
type SlotFilter struct {
	UserID      string
	StudioIDs   []string
	StartDate   time.Time
	EndDate     time.Time
	PeopleCount int
	Page        int
	Limit       int
}

// TimeSlotsResponse for API response
type TimeSlotsResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
}
