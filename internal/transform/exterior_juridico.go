package transform

import (
	"strings"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// ExteriorJuridicoRule handles corporate account exports from Exterior.
//
// Layout after a leading noise row:
//	Label | Date (dd/mm/yy) | Reference | Amount | Sign | (spacer)
//
// The sign column holds "-" for debits; the amount column is always unsigned.
// Example row: "PAGO PROVEEDOR, C.A." "01/02/23" "REF1" "1.234,56" "-" ""
type ExteriorJuridicoRule struct{}

func (r *ExteriorJuridicoRule) ID() models.RuleID {
	return models.RuleExteriorJuridico
}

func (r *ExteriorJuridicoRule) BankName() string {
	return "Exterior Jurídico"
}

func (r *ExteriorJuridicoRule) Apply(sheet models.Sheet) models.Sheet {
	rows := sheet.Clone()
	result := models.Sheet{models.HeaderRow()}
	if len(rows) == 0 {
		return result
	}

	// The first row is not a header and is dropped. Sign and spacer columns
	// (4 and 5) are consumed here and never reach the output.
	for _, row := range rows[1:] {
		amount := row.At(3)
		if strings.TrimSpace(row.At(4).String()) == "-" {
			amount = negate(amount)
		}

		result = append(result, models.Row{
			CleanLabel(row.At(0)),
			FormatDate(row.At(1)),
			row.At(2),
			models.Number(ParseAmount(amount)),
		})
	}

	return result
}
