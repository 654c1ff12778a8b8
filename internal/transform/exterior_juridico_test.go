package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

func TestExteriorJuridicoRule_Apply(t *testing.T) {
	r := &ExteriorJuridicoRule{}

	in := models.Sheet{
		{models.Text("h")},
		{models.Text("LabelA"), models.Text("01/02/23"), models.Text("REF1"), models.Text("100"), models.Text("-"), models.Text("x")},
	}

	expected := models.Sheet{
		models.HeaderRow(),
		{models.Text("LabelA"), models.Text("01/02/2023"), models.Text("REF1"), models.Number(-100)},
	}

	assert.Equal(t, expected, r.Apply(in))
}

func TestExteriorJuridicoRule_Rows(t *testing.T) {
	r := &ExteriorJuridicoRule{}

	tests := []struct {
		name     string
		row      models.Row
		expected models.Row
	}{
		{
			name:     "unsigned credit with decimal comma",
			row:      models.Row{models.Text("ABONO, NOMINA"), models.Text("15/01/24"), models.Text("R-9"), models.Text("1.234,56"), models.Text(""), models.Text("")},
			expected: models.Row{models.Text("ABONO NOMINA"), models.Text("15/01/2024"), models.Text("R-9"), models.Number(1234.56)},
		},
		{
			name:     "sign flag with surrounding spaces",
			row:      models.Row{models.Text("COMISION"), models.Text("16/01/99"), models.Text("R-10"), models.Text("12,50"), models.Text(" - "), models.Text("")},
			expected: models.Row{models.Text("COMISION"), models.Text("16/01/1999"), models.Text("R-10"), models.Number(-12.5)},
		},
		{
			name:     "numeric amount keeps its value",
			row:      models.Row{models.Text("CARGO"), models.Text("17/01/24"), models.Number(778), models.Number(99.5), models.Text("-")},
			expected: models.Row{models.Text("CARGO"), models.Text("17/01/2024"), models.Number(778), models.Number(-99.5)},
		},
		{
			name:     "negative numeric amount with sign flag",
			row:      models.Row{models.Text("REVERSO"), models.Text("17/01/24"), models.Text("R-11"), models.Number(-12.5), models.Text("-")},
			expected: models.Row{models.Text("REVERSO"), models.Text("17/01/2024"), models.Text("R-11"), models.Number(12.5)},
		},
		{
			name:     "extra columns are dropped",
			row:      models.Row{models.Text("A"), models.Text("18/01/24"), models.Text("R"), models.Text("1"), models.Text(""), models.Text(""), models.Text("extra"), models.Text("more")},
			expected: models.Row{models.Text("A"), models.Text("18/01/2024"), models.Text("R"), models.Number(1)},
		},
		{
			name:     "short row degrades to empty cells",
			row:      models.Row{models.Text("SOLO ETIQUETA")},
			expected: models.Row{models.Text("SOLO ETIQUETA"), models.Cell{}, models.Cell{}, models.Number(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Apply(models.Sheet{{models.Text("noise")}, tt.row})
			if assert.Len(t, out, 2) {
				assert.Equal(t, tt.expected, out[1])
			}
		})
	}
}

func TestExteriorJuridicoRule_OnlyNoiseRow(t *testing.T) {
	r := &ExteriorJuridicoRule{}
	out := r.Apply(models.Sheet{{models.Text("noise")}})
	assert.Equal(t, models.Sheet{models.HeaderRow()}, out)
}
