// Package reader loads statement files (CSV, xlsx, xls) into raw sheets.
//
// Values are left uninterpreted: dates stay as text or day-count serials,
// amounts keep their separators. Every row is padded with empty cells to the
// width of the widest row, and only the first worksheet of a workbook is read.
package reader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file is empty")
	ErrNoSheets          = errors.New("workbook has no worksheets")
)

// Options tunes how files are decoded.
type Options struct {
	// Charset used for CSV input that is not valid UTF-8. Defaults to
	// windows-1252. Workbook text is always Unicode.
	Charset string
}

// ReadFile loads the statement at path.
func ReadFile(path string, opts Options) (*models.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Read(filepath.Base(path), data, opts)
}

// Read decodes data according to the extension of name.
func Read(name string, data []byte, opts Options) (*models.Document, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}

	var sheet models.Sheet
	switch format {
	case models.FormatCSV:
		sheet, err = readCSV(data, opts.Charset)
	case models.FormatXLSX:
		sheet, err = readXLSX(data)
	case models.FormatXLS:
		sheet, err = readXLS(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return &models.Document{
		FileName: name,
		BaseName: BaseName(name),
		Format:   format,
		Sheet:    padRows(sheet),
	}, nil
}

// DetectFormat maps a file name to a source format by extension.
func DetectFormat(name string) (models.SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return models.FormatCSV, nil
	case ".xlsx", ".xlsm":
		return models.FormatXLSX, nil
	case ".xls":
		return models.FormatXLS, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .csv, .xlsx or .xls)", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// BaseName strips the directory and the last extension from name.
func BaseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// padRows extends every row with empty cells to the widest row's length.
func padRows(sheet models.Sheet) models.Sheet {
	width := 0
	for _, row := range sheet {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range sheet {
		if len(row) < width {
			padded := make(models.Row, width)
			copy(padded, row)
			sheet[i] = padded
		}
	}
	return sheet
}

// textCell builds a text cell in NFC form, so composed and decomposed
// accents ("o\u0301" vs "\u00f3") compare equal in header lookups.
func textCell(s string) models.Cell {
	return models.Text(norm.NFC.String(s))
}

// inferCell turns canonical numeric literals ("44927", "-12.5") into number
// cells and keeps everything else as text. Literals that would not survive
// a round trip ("000123", "1e3", "12.50") stay text.
func inferCell(s string) models.Cell {
	if s == "" {
		return models.Cell{}
	}
	if f, ok := parseFinite(s); ok && models.FormatNumber(f) == s {
		return models.Number(f)
	}
	return textCell(s)
}

// parseFinite parses s as a float, rejecting NaN and infinities.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
