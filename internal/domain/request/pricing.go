package request

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrs/backend/internal/domain/reference"
)

// Quote is the result of pricing a stay against a hotel rate table
type Quote struct {
	PricePerNight decimal.Decimal
	Nights        int
	Total         decimal.Decimal
}

// Nights converts a stay interval to a billable night count. Fractional
// stays round to the nearest whole day and every stay bills at least one
// night, so same-day stays are never free.
func Nights(start, end time.Time) int {
	days := int(math.Round(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// ComputeQuote prices a stay at the given hotel and board formula.
// A formula the hotel has not quoted prices at zero.
func ComputeQuote(hotel *reference.Hotel, formula reference.Formula, start, end time.Time) Quote {
	nights := Nights(start, end)
	rate := hotel.RateFor(formula)
	return Quote{
		PricePerNight: rate,
		Nights:        nights,
		Total:         rate.Mul(decimal.NewFromInt(int64(nights))),
	}
}
