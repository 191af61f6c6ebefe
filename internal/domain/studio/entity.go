package studio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Studio is a bookable room with an hourly rate. The booking core only
// reads studios; the catalog is seeded externally.
type Studio struct {
	ID         string          `db:"id"`
	HourlyRate decimal.Decimal `db:"hourly_rate"`
	CreatedAt  time.Time       `db:"created_at"`
}

// StudioResponse for API response
type StudioResponse struct {
	ID         string          `json:"id"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// ToResponse converts entity to response
func (s *Studio) ToResponse() StudioResponse {
	return StudioResponse{
		ID:         s.ID,
		HourlyRate: s.HourlyRate,
	}
}
