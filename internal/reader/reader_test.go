package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected models.SourceFormat
		wantErr  bool
	}{
		{"movimientos.csv", models.FormatCSV, false},
		{"MOVIMIENTOS.CSV", models.FormatCSV, false},
		{"export.txt", models.FormatCSV, false},
		{"estado.xlsx", models.FormatXLSX, false},
		{"estado.xls", models.FormatXLS, false},
		{"estado.pdf", "", true},
		{"estado", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"estado.xlsx", "estado"},
		{"estado.de.cuenta.csv", "estado.de.cuenta"},
		{"/tmp/uploads/banesco.xls", "banesco"},
		{"sin_extension", "sin_extension"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BaseName(tt.input))
	}
}

func TestReadRejectsEmptyFile(t *testing.T) {
	_, err := Read("vacio.csv", nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "estado.csv")
	require.NoError(t, os.WriteFile(path, []byte("Fecha,Monto\n01/02/23,\"1.234,56\"\n"), 0o644))

	doc, err := ReadFile(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "estado.csv", doc.FileName)
	assert.Equal(t, "estado", doc.BaseName)
	assert.Equal(t, models.FormatCSV, doc.Format)
	assert.Equal(t, models.Sheet{
		{models.Text("Fecha"), models.Text("Monto")},
		{models.Text("01/02/23"), models.Text("1.234,56")},
	}, doc.Sheet)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	assert.Error(t, err)
}

func TestInferCell(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Cell
	}{
		{"44927", models.Number(44927)},
		{"-12.5", models.Number(-12.5)},
		{"000123", models.Text("000123")},
		{"12.50", models.Text("12.50")},
		{"1e3", models.Text("1e3")},
		{"1.234,56", models.Text("1.234,56")},
		{"", models.Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferCell(tt.input))
		})
	}
}

func TestPadRows(t *testing.T) {
	sheet := padRows(models.Sheet{
		{models.Text("a")},
		{},
		{models.Text("a"), models.Text("b"), models.Text("c")},
	})

	for i, row := range sheet {
		assert.Len(t, row, 3, "row %d", i)
	}
	assert.Equal(t, models.Row{models.Text("a"), models.Cell{}, models.Cell{}}, sheet[0])
}
