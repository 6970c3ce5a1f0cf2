package reference

// Formula identifies the board arrangement a nightly rate is quoted for
type Formula string

const (
	FormulaPlainStay Formula = "PLAIN_STAY"
	FormulaMealPlan  Formula = "MEAL_PLAN"
	FormulaHalfBoard Formula = "HALF_BOARD"
	FormulaFullBoard Formula = "FULL_BOARD"
)

// IsValid checks if the formula is one of the known board arrangements
func (f Formula) IsValid() bool {
	switch f {
	case FormulaPlainStay, FormulaMealPlan, FormulaHalfBoard, FormulaFullBoard:
		return true
	}
	return false
}

// String returns the string representation
func (f Formula) String() string {
	return string(f)
}

// Label returns the French display label used on printed documents
func (f Formula) Label() string {
	switch f {
	case FormulaMealPlan:
		return "Séjour + Restauration"
	case FormulaHalfBoard:
		return "Demi-pension"
	case FormulaFullBoard:
		return "Pension complète"
	default:
		return "Séjour simple"
	}
}

// ParseFormula maps a raw selector to a formula, falling back to the
// plain-stay arrangement for unrecognized values
func ParseFormula(raw string) Formula {
	f := Formula(raw)
	if !f.IsValid() {
		return FormulaPlainStay
	}
	return f
}
