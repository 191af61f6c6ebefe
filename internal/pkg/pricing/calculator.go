package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// Price computes the cost of the [start, end) range at the given hourly
// rate. Duration is taken as whole seconds and divided in decimal space,
// so a stored slot re-priced from its own bounds always reproduces its
// stored price exactly.
func Price(start, end time.Time, hourlyRate decimal.Decimal) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(end.Sub(start) / time.Second))
	return seconds.Mul(hourlyRate).Div(secondsPerHour)
}
