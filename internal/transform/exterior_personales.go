package transform

import (
	"github.com/insightdelivered/statement-transformer/internal/models"
)

// ExteriorPersonalesRule handles personal account exports from Exterior.
//
// Source columns used: 1 Fecha, 3 Concepto, 5 Referencia, 6 Monto.
// Every other column is discarded. Some exports come without a header row.
type ExteriorPersonalesRule struct{}

// personalesHeader is the order the selected source columns arrive in.
var personalesHeader = []string{
	models.ColumnDate,
	models.ColumnLabel,
	models.ColumnReference,
	models.ColumnAmount,
}

func (r *ExteriorPersonalesRule) ID() models.RuleID {
	return models.RuleExteriorPersonales
}

func (r *ExteriorPersonalesRule) BankName() string {
	return "Exterior Personales"
}

func (r *ExteriorPersonalesRule) Apply(sheet models.Sheet) models.Sheet {
	rows := sheet.Clone()

	selected := make(models.Sheet, 0, len(rows)+1)
	for _, row := range rows {
		selected = append(selected, models.Row{row.At(1), row.At(3), row.At(5), row.At(6)})
	}

	// No "Fecha" header means the export starts straight with data.
	if len(selected) == 0 || !isText(selected[0].At(0), "Fecha") {
		selected = append(models.Sheet{textRow(personalesHeader...)}, selected...)
	}

	cols := locateColumns(textRow(personalesHeader...))
	result := make(models.Sheet, len(selected))
	for i, row := range selected {
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
