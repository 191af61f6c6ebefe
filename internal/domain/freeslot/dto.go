package freeslot

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricedSlot is a derived, unbooked sub-interval of at most one hour,
// priced at its studio's hourly rate. It is never persisted.
type PricedSlot struct {
	StudioID  string          `json:"studio_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Price     decimal.Decimal `json:"price"`
}

// FreeSlotsResponse for API response
type FreeSlotsResponse struct {
	FreeSlots []PricedSlot `json:"free_slots"`
}
