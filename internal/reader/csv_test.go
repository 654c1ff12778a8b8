package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected models.Sheet
	}{
		{
			name: "comma delimited with quoted comma",
			data: []byte("Etiqueta,Monto\n\"PAGO, LUZ\",\"-1.234,56\"\n"),
			expected: models.Sheet{
				{models.Text("Etiqueta"), models.Text("Monto")},
				{models.Text("PAGO, LUZ"), models.Text("-1.234,56")},
			},
		},
		{
			name: "semicolon delimited",
			data: []byte("Fecha;Concepto;Monto\n15/03/2024;PAGO;10,00\n"),
			expected: models.Sheet{
				{models.Text("Fecha"), models.Text("Concepto"), models.Text("Monto")},
				{models.Text("15/03/2024"), models.Text("PAGO"), models.Text("10,00")},
			},
		},
		{
			name: "tab delimited",
			data: []byte("Fecha\tMonto\n15/03/2024\t10,00\n"),
			expected: models.Sheet{
				{models.Text("Fecha"), models.Text("Monto")},
				{models.Text("15/03/2024"), models.Text("10,00")},
			},
		},
		{
			name: "utf-8 bom is stripped",
			data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Descripción,Monto\n")...),
			expected: models.Sheet{
				{models.Text("Descripción"), models.Text("Monto")},
			},
		},
		{
			name: "windows-1252 fallback",
			data: []byte("Descripci\xf3n,Monto\nA\xd1O,1\n"),
			expected: models.Sheet{
				{models.Text("Descripción"), models.Text("Monto")},
				{models.Text("AÑO"), models.Text("1")},
			},
		},
		{
			name: "title line above a semicolon table",
			data: []byte("Movimientos de la cuenta 0115-0001\nPAGO;01/02/23;REF1;1.234,56;-;\nABONO;02/02/23;REF2;50,00;+;\n"),
			expected: models.Sheet{
				{models.Text("Movimientos de la cuenta 0115-0001"), models.Cell{}, models.Cell{}, models.Cell{}, models.Cell{}, models.Cell{}},
				{models.Text("PAGO"), models.Text("01/02/23"), models.Text("REF1"), models.Text("1.234,56"), models.Text("-"), models.Cell{}},
				{models.Text("ABONO"), models.Text("02/02/23"), models.Text("REF2"), models.Text("50,00"), models.Text("+"), models.Cell{}},
			},
		},
		{
			name: "ragged rows are padded and numbers stay text",
			data: []byte("h\n44927,REF,,x\n"),
			expected: models.Sheet{
				{models.Text("h"), models.Cell{}, models.Cell{}, models.Cell{}},
				{models.Text("44927"), models.Text("REF"), models.Cell{}, models.Text("x")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Read("estado.csv", tt.data, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.Sheet)
		})
	}
}

func TestReadCSVUnknownCharset(t *testing.T) {
	_, err := Read("estado.csv", []byte("Descripci\xf3n\n"), Options{Charset: "klingon"})
	assert.Error(t, err)
}

func TestReadCSVNormalizesAccents(t *testing.T) {
	doc, err := Read("estado.csv", []byte("Descripcio\u0301n\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, models.Text("Descripci\u00f3n"), doc.Sheet[0][0])
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a\tb\tc", '\t'},
		{"\"x;y;z\",b,c", ','},
		{"\n\na;b", ';'},
		{"Estado de cuenta\nPAGO;01/02/23;1.234,56\nABONO;02/02/23;50,00", ';'},
		{"Cuenta: 0115, Titular: ACME\nFecha;Monto\n01/02/23;10\n02/02/23;20", ';'},
		{"Fecha,Concepto\n01/02/23,PAGO; LUZ\n02/02/23,ABONO", ','},
		{"single", ','},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sniffDelimiter(tt.input), "input %q", tt.input)
	}
}
