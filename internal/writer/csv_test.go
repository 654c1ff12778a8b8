package writer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

func normalizedSheet() models.Sheet {
	return models.Sheet{
		models.HeaderRow(),
		{models.Text("LabelA"), models.Text("01/02/2023"), models.Text("REF1"), models.Number(-100)},
		{models.Text("ABONO NOMINA"), models.Text("02/02/2023"), models.Number(778899), models.Number(1234.56)},
		{models.Cell{}, models.Text("03/02/2023"), models.Cell{}, models.Number(0)},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, normalizedSheet()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "ETIQUETA,FECHA,REFERENCIA,IMPORTE\n" +
		"LabelA,01/02/2023,REF1,-100\n" +
		"ABONO NOMINA,02/02/2023,778899,1234.56\n" +
		",03/02/2023,,0\n"

	if got := buf.String(); got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestCSVWriter_WriteCRLF(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{UseCRLF: true}
	if err := w.Write(&buf, models.Sheet{models.HeaderRow()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := buf.String(); got != "ETIQUETA,FECHA,REFERENCIA,IMPORTE\r\n" {
		t.Errorf("got %q", got)
	}
}

func TestCSVWriter_WriteQuotesSpecialFields(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	sheet := models.Sheet{
		{models.Text(`PAGO "ESPECIAL"`), models.Text("01/02/2023"), models.Text("A,B"), models.Number(1)},
	}
	if err := w.Write(&buf, sheet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := buf.String(); got != "\"PAGO \"\"ESPECIAL\"\"\",01/02/2023,\"A,B\",1\n" {
		t.Errorf("got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCSVWriter_WriteError(t *testing.T) {
	w := &CSVWriter{}
	if err := w.Write(failingWriter{}, normalizedSheet()); err == nil {
		t.Error("expected error from failing writer")
	}
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transformado_estado.csv")

	w := &CSVWriter{}
	if err := w.WriteToFile(path, normalizedSheet()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(lines))
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"estado.xlsx", "transformado_estado.csv"},
		{"estado.de.cuenta.csv", "transformado_estado.de.cuenta.csv"},
		{"/data/banesco.xls", "transformado_banesco.csv"},
		{"sin_extension", "transformado_sin_extension.csv"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.input); got != tt.expected {
			t.Errorf("OutputName(%q): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(filepath.Join("data", "in", "estado.xlsx"))
	want := filepath.Join("data", "in", "transformado_estado.csv")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
