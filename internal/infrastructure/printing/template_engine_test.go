package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
)

func TestTemplateEngine_RenderString(t *testing.T) {
	engine := NewTemplateEngine()

	t.Run("renders data into the template", func(t *testing.T) {
		html, err := engine.RenderString("test", "<p>{{.Name}}</p>", map[string]string{"Name": "Hôtel El Aurassi"})
		require.NoError(t, err)
		assert.Equal(t, "<p>Hôtel El Aurassi</p>", html)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := engine.RenderString("test", "", nil)
		require.Error(t, err)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("reports parse failures", func(t *testing.T) {
		_, err := engine.RenderString("test", "{{.Broken", nil)
		require.Error(t, err)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("escapes untrusted values", func(t *testing.T) {
		html, err := engine.RenderString("test", "<p>{{.V}}</p>", map[string]string{"V": "<script>"})
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
	})
}

func TestTemplateEngine_FormatMoney(t *testing.T) {
	engine := NewTemplateEngine()

	tests := []struct {
		name  string
		value decimal.Decimal
		want  string
	}{
		{"thousands grouping", decimal.NewFromInt(36000), "36"},
		{"decimal comma", decimal.NewFromFloat(1250.5), ","},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := engine.formatMoney(tt.value)
			assert.Contains(t, out, tt.want)
			assert.True(t, strings.HasSuffix(out, request.DefaultCurrency))
		})
	}

	t.Run("raw form has no currency", func(t *testing.T) {
		out := engine.formatMoneyRaw(decimal.NewFromInt(500))
		assert.NotContains(t, out, request.DefaultCurrency)
	})
}

func TestTemplateEngine_DateFunctions(t *testing.T) {
	t.Run("formats a French short date", func(t *testing.T) {
		d := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
		assert.Equal(t, "10/03/2026", formatDate(d))
		assert.Equal(t, "10/03/2026 14:30", formatDateTime(d))
	})

	t.Run("zero time renders empty", func(t *testing.T) {
		assert.Equal(t, "", formatDate(time.Time{}))
		assert.Equal(t, "", formatDateTime(time.Time{}))
	})
}

func TestTemplateEngine_DomainLabels(t *testing.T) {
	t.Run("formula labels", func(t *testing.T) {
		assert.Equal(t, "Demi-pension", formulaLabel(reference.FormulaHalfBoard))
		assert.Equal(t, "Séjour simple", formulaLabel(reference.FormulaPlainStay))
	})

	t.Run("payment labels", func(t *testing.T) {
		assert.Equal(t, "Payé", paymentLabel(request.PaymentPaid))
		assert.Equal(t, "Non payé", paymentLabel(request.PaymentUnpaid))
	})

	t.Run("status labels", func(t *testing.T) {
		assert.Equal(t, "Réservé", statusLabel(request.StatusReserved))
		assert.Equal(t, "Rejeté", statusLabel(request.StatusRejected))
		assert.Equal(t, "En attente d'approbation", statusLabel(request.StatusAwaitingManager))
	})
}

func TestTemplateEngine_StringHelpers(t *testing.T) {
	t.Run("truncate", func(t *testing.T) {
		assert.Equal(t, "Hô...", truncate("Hôtel El Aurassi", 5))
		assert.Equal(t, "Hôtel", truncate("Hôtel", 10))
		assert.Equal(t, "", truncate("Hôtel", 0))
	})

	t.Run("default falls back on empty", func(t *testing.T) {
		assert.Equal(t, "—", defaultFunc("—", ""))
		assert.Equal(t, "—", defaultFunc("—", "   "))
		assert.Equal(t, "Alger", defaultFunc("—", "Alger"))
		assert.Equal(t, "—", defaultFunc("—", nil))
	})
}

func TestToDecimal(t *testing.T) {
	assert.True(t, toDecimal(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
	assert.True(t, toDecimal(5).Equal(decimal.NewFromInt(5)))
	assert.True(t, toDecimal(int64(5)).Equal(decimal.NewFromInt(5)))
	assert.True(t, toDecimal("5.50").Equal(decimal.NewFromFloat(5.5)))
	assert.True(t, toDecimal("garbage").IsZero())
	assert.True(t, toDecimal(nil).IsZero())
	assert.True(t, toDecimal((*decimal.Decimal)(nil)).IsZero())
}
