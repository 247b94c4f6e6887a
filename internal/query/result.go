package query

import "github.com/shopspring/decimal"

// Outcome tags the shape of an Answer.
type Outcome int

const (
	// OutcomeOK carries a value and its rendered text.
	OutcomeOK Outcome = iota
	// OutcomeNoMatch means a financial intent matched no transactions.
	OutcomeNoMatch
	// OutcomeNonFinancial hands the question to the chat fallback. Value is
	// nil and Text is empty.
	OutcomeNonFinancial
	// OutcomeInvalidInput is returned for empty or malformed questions.
	OutcomeInvalidInput
	OutcomeGreeting
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeNonFinancial:
		return "non_financial"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeGreeting:
		return "greeting"
	default:
		return "unknown"
	}
}

// Answer is the structured result of one question.
type Answer struct {
	Outcome Outcome
	Intent  Intent
	Range   *DateRange

	// Value is the headline number: a total, an extremum amount, the signed
	// difference of a comparison or a balance. Nil unless Outcome is OK.
	Value *decimal.Decimal
	Text  string

	Stats    *Stats
	Extremum *CategoryAmount
}

// ValueOf returns the answer's value or zero.
func (a Answer) ValueOf() decimal.Decimal {
	if a.Value == nil {
		return decimal.Zero
	}
	return *a.Value
}
