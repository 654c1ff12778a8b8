package transform

import (
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// Summary totals the IMPORTE column of a normalized sheet.
type Summary struct {
	Count       int
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Net returns credits minus debits.
func (s Summary) Net() decimal.Decimal {
	return s.TotalCredit.Sub(s.TotalDebit)
}

// Summarize counts the data rows of a normalized sheet and adds up debits
// (negative amounts, reported as positive totals) and credits. Rows whose
// amount is not numeric are counted but not totalled.
func Summarize(sheet models.Sheet) Summary {
	var s Summary
	if len(sheet) < 2 {
		return s
	}
	for _, row := range sheet[1:] {
		s.Count++
		c := row.At(3)
		if !c.IsNumber() {
			continue
		}
		amount := decimal.NewFromFloat(c.Number)
		if amount.IsNegative() {
			s.TotalDebit = s.TotalDebit.Add(amount.Abs())
		} else {
			s.TotalCredit = s.TotalCredit.Add(amount)
		}
	}
	return s
}
