package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

func TestBanescoRule_Apply(t *testing.T) {
	r := &BanescoRule{}

	out := r.Apply(sampleSheets[models.RuleBanesco])

	expected := models.Sheet{
		models.HeaderRow(),
		{models.Text("PAGO MOVIL"), models.Text("15/03/2024"), models.Text("0042"), models.Number(-1250.5)},
	}
	assert.Equal(t, expected, out)
}

func TestBanescoRule_DateVariants(t *testing.T) {
	r := &BanescoRule{}

	tests := []struct {
		input    models.Cell
		expected models.Cell
	}{
		{models.Text("2024/03/15"), models.Text("15/03/2024")},
		{models.Text("24/3/5"), models.Text("5/3/24")},
		{models.Text("2024-03-15"), models.Text("2024-03-15")},
		{models.Number(45366), models.Number(45366)},
	}

	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			in := models.Sheet{
				{models.Text("Fecha"), models.Text("Referencia"), models.Text("Descripcion"), models.Text("Monto"), models.Text("Balance")},
				{tt.input, models.Text("1"), models.Text("X"), models.Text("1,00"), models.Text("0")},
			}
			out := r.Apply(in)
			assert.Equal(t, tt.expected, out[1][1])
		})
	}
}

func TestBanescoHeader(t *testing.T) {
	tests := []struct {
		input    models.Cell
		expected models.Cell
	}{
		{models.Text("Monto"), models.Text("IMPORTE")},
		{models.Text("Descripción"), models.Text("ETIQUETA")},
		{models.Text("DESCRIPCION"), models.Text("ETIQUETA")},
		{models.Text("Descripcion del movimiento"), models.Text("ETIQUETA")},
		{models.Text("Referencia"), models.Text("REFERENCIA")},
		{models.Number(1), models.Number(1)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, banescoHeader(tt.input), "header %q", tt.input.String())
	}
}
