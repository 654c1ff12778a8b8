package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// BancaribeRule handles Bancaribe account exports.
//
// Layout after the header row:
//	Date (serial) | Reference | Label | D/C flag | Amount (1.234,56)
//
// Debits are flagged "D" and carry an unsigned amount. Card administration
// fees ("TDD - ADMINISTRACION") embed the short reference inside a longer
// code, e.g. "0000000123000" -> "123".
type BancaribeRule struct{}

const bancaribeAdminFee = "TDD - ADMINISTRACION"

func (r *BancaribeRule) ID() models.RuleID {
	return models.RuleBancaribe
}

func (r *BancaribeRule) BankName() string {
	return "Bancaribe"
}

func (r *BancaribeRule) Apply(sheet models.Sheet) models.Sheet {
	rows := sheet.Clone()
	result := models.Sheet{models.HeaderRow()}
	if len(rows) == 0 {
		return result
	}

	for _, row := range rows[1:] {
		label := row.At(2)
		reference := models.Text(row.At(1).String())

		amount := row.At(4)
		if isText(row.At(3), "D") {
			amount = negate(amount)
		}

		if label.IsText() && strings.Contains(label.Text, bancaribeAdminFee) {
			if ref := []rune(reference.Text); len(ref) >= 11 {
				reference = models.Text(string(ref[7:10]))
			}
		}

		result = append(result, models.Row{
			CleanLabel(label),
			bancaribeDate(row.At(0)),
			reference,
			models.Number(bancaribeAmount(amount)),
		})
	}

	return result
}

// bancaribeDate renders a serial date cell as dd/MM/yyyy. Bancaribe's month
// is one ahead of the calendar month: January serials print as "02".
// Non-numeric cells pass through unchanged.
func bancaribeDate(c models.Cell) models.Cell {
	if !c.IsNumber() || math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
		return c
	}
	t := ExcelDateToTime(c.Number)
	return models.Text(fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month())+1, t.Year()))
}

// bancaribeAmount parses amounts written with "." thousands separators and a
// "," decimal separator. Unlike ParseAmount it does not filter other
// characters. Unreadable values yield 0.
func bancaribeAmount(c models.Cell) float64 {
	switch c.Kind {
	case models.CellNumber:
		return c.Number
	case models.CellEmpty:
		return 0
	}
	cleaned := strings.ReplaceAll(c.Text, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	return parseFloatPrefix(cleaned)
}
