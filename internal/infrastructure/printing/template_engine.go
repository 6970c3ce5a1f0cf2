package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
)

// TemplateEngine handles rendering HTML templates with business data.
// It uses Go's html/template package with custom functions for
// French-locale formatting of dates and amounts.
type TemplateEngine struct {
	funcMap template.FuncMap
	printer *message.Printer
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		printer: message.NewPrinter(language.French),
	}

	e.funcMap = template.FuncMap{
		// Money and number formatting
		"formatMoney":    e.formatMoney,
		"formatMoneyRaw": e.formatMoneyRaw,
		"formatInt":      e.formatInt,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// Domain labels
		"formulaLabel": formulaLabel,
		"paymentLabel": paymentLabel,
		"statusLabel":  statusLabel,

		// String utilities
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"trim":     strings.TrimSpace,
		"truncate": truncate,
		"default":  defaultFunc,

		// Misc
		"now":      time.Now,
		"safeHTML": safeHTML,
	}

	return e
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(name, content string, data interface{}) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// formatMoney formats a decimal value as an amount with currency
// Example: 36000 -> "36 000,00 DZD"
func (e *TemplateEngine) formatMoney(v interface{}) string {
	return e.formatMoneyRaw(v) + " " + request.DefaultCurrency
}

// formatMoneyRaw formats a decimal value with French digit grouping
// Example: 36000 -> "36 000,00"
func (e *TemplateEngine) formatMoneyRaw(v interface{}) string {
	d := toDecimal(v)
	f, _ := d.Float64()
	return e.printer.Sprintf("%.2f", f)
}

// formatInt formats an integer with French digit grouping
func (e *TemplateEngine) formatInt(v interface{}) string {
	switch n := v.(type) {
	case int:
		return e.printer.Sprintf("%d", n)
	case int64:
		return e.printer.Sprintf("%d", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatDate formats a time as a French short date
// Example: 2026-03-10 -> "10/03/2026"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// formatDateTime formats a time with date and clock
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// formulaLabel returns the French label of a board formula
func formulaLabel(f reference.Formula) string {
	return f.Label()
}

// paymentLabel returns the French label of a payment status
func paymentLabel(s request.PaymentStatus) string {
	if s == request.PaymentPaid {
		return "Payé"
	}
	return "Non payé"
}

// statusLabel returns the French label of a request status
func statusLabel(s request.Status) string {
	switch s {
	case request.StatusAwaitingManager:
		return "En attente d'approbation"
	case request.StatusAwaitingReservation:
		return "En attente de réservation"
	case request.StatusReserved:
		return "Réservé"
	case request.StatusRejected:
		return "Rejeté"
	default:
		return string(s)
	}
}

// truncate shortens a string to the given maximum length
func truncate(s string, length int) string {
	if length <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}

// defaultFunc returns the fallback when the value is empty
func defaultFunc(fallback, value interface{}) interface{} {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return fallback
	}
	return value
}

// safeHTML marks a string as safe HTML content
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

// toDecimal converts supported numeric types to decimal
func toDecimal(v interface{}) decimal.Decimal {
	switch d := v.(type) {
	case decimal.Decimal:
		return d
	case *decimal.Decimal:
		if d == nil {
			return decimal.Zero
		}
		return *d
	case int:
		return decimal.NewFromInt(int64(d))
	case int64:
		return decimal.NewFromInt(d)
	case float64:
		return decimal.NewFromFloat(d)
	case string:
		parsed, err := decimal.NewFromString(d)
		if err != nil {
			return decimal.Zero
		}
		return parsed
	default:
		return decimal.Zero
	}
}
