package transform

import (
	"strings"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// VenezuelaRule handles Banco de Venezuela exports.
//
// The header row names the columns ("Fecha", "Referencia", "Concepto",
// "Monto", ...). Columns 3, 5, 7 and 8 carry balances and codes that are
// discarded; the rest are located by header name.
type VenezuelaRule struct{}

func (r *VenezuelaRule) ID() models.RuleID {
	return models.RuleVenezuela
}

func (r *VenezuelaRule) BankName() string {
	return "Venezuela"
}

func (r *VenezuelaRule) Apply(sheet models.Sheet) models.Sheet {
	rows := sheet.Clone()
	if len(rows) == 0 {
		return models.Sheet{models.HeaderRow()}
	}

	for i, c := range rows[0] {
		rows[0][i] = venezuelaHeader(c)
	}

	// Each removal acts on the row already shortened by the previous one.
	for i, row := range rows {
		row = spliceRow(row, 7, 2)
		row = spliceRow(row, 5, 1)
		row = spliceRow(row, 3, 1)
		rows[i] = row
	}

	cols := locateColumns(rows[0])
	result := make(models.Sheet, len(rows))
	for i, row := range rows {
		amount := row.At(cols.amount)
		if i > 0 {
			amount = models.Number(ParseAmount(amount))
		}
		result[i] = models.Row{
			CleanLabel(row.At(cols.label)),
			row.At(cols.date),
			row.At(cols.reference),
			amount,
		}
	}

	result[0] = models.HeaderRow()
	return result
}

// venezuelaHeader maps "monto" and "concepto" to their normalized names and
// uppercases every other text header.
func venezuelaHeader(c models.Cell) models.Cell {
	if !c.IsText() {
		return c
	}
	switch strings.ToLower(c.Text) {
	case "monto":
		return models.Text(models.ColumnAmount)
	case "concepto":
		return models.Text(models.ColumnLabel)
	}
	return models.Text(strings.ToUpper(c.Text))
}
