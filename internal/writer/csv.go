package writer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// OutputPrefix is prepended to the input base name to name the output file.
const OutputPrefix = "transformado_"

// CSVWriter writes normalized sheets as comma-separated UTF-8 text.
type CSVWriter struct {
	// UseCRLF ends lines with \r\n instead of \n.
	UseCRLF bool
}

// WriteToFile writes the sheet to a CSV file at the given path. The file is
// only created once the whole sheet has been serialized.
func (w *CSVWriter) WriteToFile(path string, sheet models.Sheet) error {
	var buf bytes.Buffer
	if err := w.Write(&buf, sheet); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return nil
}

// Write writes every row of the sheet, header included, to out.
func (w *CSVWriter) Write(out io.Writer, sheet models.Sheet) error {
	writer := csv.NewWriter(out)
	writer.UseCRLF = w.UseCRLF

	for i, row := range sheet {
		if err := writer.Write(row.Strings()); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// OutputName returns the download name for a transformed file:
// "estado.xlsx" becomes "transformado_estado.csv".
func OutputName(fileName string) string {
	base := filepath.Base(fileName)
	return OutputPrefix + strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}

// OutputPath places the output file next to the input file.
func OutputPath(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), OutputName(inputPath))
}
