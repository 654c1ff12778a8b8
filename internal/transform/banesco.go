package transform

import (
	"strings"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// BanescoRule handles Banesco exports.
//
// The header row names the columns ("Fecha", "Referencia", "Descripción",
// "Monto", "Balance"). Column 4 is discarded. Dates are yyyy/mm/dd.
type BanescoRule struct{}

func (r *BanescoRule) ID() models.RuleID {
	return models.RuleBanesco
}

func (r *BanescoRule) BankName() string {
	return "Banesco"
}

func (r *BanescoRule) Apply(sheet models.Sheet) models.Sheet {
	rows := sheet.Clone()
	if len(rows) == 0 {
		return models.Sheet{models.HeaderRow()}
	}

	for i, c := range rows[0] {
		rows[0][i] = banescoHeader(c)
	}
	for i := range rows {
		rows[i] = spliceRow(rows[i], 4, 1)
	}

	cols := locateColumns(rows[0])
	result := make(models.Sheet, len(rows))
	for i, row := range rows {
		date, amount := row.At(cols.date), row.At(cols.amount)
		if i > 0 {
			date = reverseDate(date)
			amount = models.Number(ParseAmount(amount))
		}
		result[i] = models.Row{
			CleanLabel(row.At(cols.label)),
			date,
			row.At(cols.reference),
			amount,
		}
	}

	result[0] = models.HeaderRow()
	return result
}

// banescoHeader maps "monto" and any "descripci..." spelling to their
// normalized names and uppercases every other text header.
func banescoHeader(c models.Cell) models.Cell {
	if !c.IsText() {
		return c
	}
	lower := strings.ToLower(c.Text)
	switch {
	case lower == "monto":
		return models.Text(models.ColumnAmount)
	case strings.Contains(lower, "descripci"):
		return models.Text(models.ColumnLabel)
	}
	return models.Text(strings.ToUpper(c.Text))
}

// reverseDate swaps the first and last parts of a three-part slash date,
// turning yyyy/mm/dd into dd/mm/yyyy. Other cells pass through unchanged.
func reverseDate(c models.Cell) models.Cell {
	if !c.IsText() {
		return c
	}
	parts := strings.Split(c.Text, "/")
	if len(parts) != 3 {
		return c
	}
	return models.Text(parts[2] + "/" + parts[1] + "/" + parts[0])
}
