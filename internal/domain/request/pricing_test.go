package request

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrs/backend/internal/domain/reference"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	t.Run("whole day spans", func(t *testing.T) {
		assert.Equal(t, 3, Nights(day(10), day(13)))
		assert.Equal(t, 1, Nights(day(10), day(11)))
	})

	t.Run("same-day stay bills one night", func(t *testing.T) {
		assert.Equal(t, 1, Nights(day(10), day(10)))
	})

	t.Run("fractional spans round to nearest day", func(t *testing.T) {
		start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC)
		// 1.875 days rounds to 2
		assert.Equal(t, 2, Nights(start, end))

		end = time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)
		// 0.458 days rounds to 0, floored to the minimum of 1
		assert.Equal(t, 1, Nights(start, end))
	})
}

func TestComputeQuote(t *testing.T) {
	hotel, err := reference.NewHotel("Hôtel Le Zénith", "Oran", "", reference.RateTable{
		PlainStay: decimal.NewFromInt(6000),
		HalfBoard: decimal.NewFromInt(8000),
		FullBoard: decimal.NewFromInt(9500),
	})
	require.NoError(t, err)

	t.Run("multiplies nightly rate by nights", func(t *testing.T) {
		q := ComputeQuote(hotel, reference.FormulaHalfBoard, day(10), day(13))

		assert.Equal(t, 3, q.Nights)
		assert.True(t, q.PricePerNight.Equal(decimal.NewFromInt(8000)))
		assert.True(t, q.Total.Equal(decimal.NewFromInt(24000)))
	})

	t.Run("formula without a quoted rate prices at zero", func(t *testing.T) {
		q := ComputeQuote(hotel, reference.FormulaMealPlan, day(10), day(13))

		assert.True(t, q.PricePerNight.IsZero())
		assert.True(t, q.Total.IsZero())
	})

	t.Run("unknown formula falls back to plain stay", func(t *testing.T) {
		q := ComputeQuote(hotel, reference.ParseFormula("LUXE"), day(10), day(12))

		assert.True(t, q.PricePerNight.Equal(decimal.NewFromInt(6000)))
		assert.True(t, q.Total.Equal(decimal.NewFromInt(12000)))
	})
}
