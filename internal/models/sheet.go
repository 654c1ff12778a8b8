package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// CellKind tags the value held by a Cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a single raw or normalized spreadsheet value.
// The zero value is an empty cell.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Text returns a text cell. An empty string yields an empty cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

func (c Cell) IsEmpty() bool  { return c.Kind == CellEmpty }
func (c Cell) IsText() bool   { return c.Kind == CellText }
func (c Cell) IsNumber() bool { return c.Kind == CellNumber }

// String renders the cell the way it is written to CSV: text verbatim,
// numbers in their shortest decimal form and empty cells as "".
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return FormatNumber(c.Number)
	default:
		return ""
	}
}

// MarshalJSON encodes text and empty cells as strings and numbers as numbers,
// so a sheet serializes as a plain array of arrays.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Kind == CellNumber && !math.IsNaN(c.Number) && !math.IsInf(c.Number, 0) {
		return []byte(FormatNumber(c.Number)), nil
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a JSON string, number or null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*c = Text(t)
	case float64:
		*c = Number(t)
	default:
		*c = Cell{}
	}
	return nil
}

// FormatNumber formats f without exponent or trailing zeros ("-100", "1234.56").
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Row is an ordered sequence of cells, addressed by position.
type Row []Cell

// At returns the cell at index i, or an empty cell when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Strings renders every cell with Cell.String.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// Sheet is an ordered sequence of rows. Row 0 is conventionally the header.
type Sheet []Row

// Clone returns a deep copy of the sheet.
func (s Sheet) Clone() Sheet {
	if s == nil {
		return nil
	}
	out := make(Sheet, len(s))
	for i, row := range s {
		if row == nil {
			continue
		}
		out[i] = make(Row, len(row))
		copy(out[i], row)
	}
	return out
}

// Head returns at most n leading rows. The rows are shared with s.
func (s Sheet) Head(n int) Sheet {
	if n < 0 || n >= len(s) {
		return s
	}
	return s[:n]
}

// Header is the fixed header row of every normalized sheet.
var Header = []string{ColumnLabel, ColumnDate, ColumnReference, ColumnAmount}

const (
	ColumnLabel     = "ETIQUETA"
	ColumnDate      = "FECHA"
	ColumnReference = "REFERENCIA"
	ColumnAmount    = "IMPORTE"
)

// HeaderRow returns a fresh copy of the normalized header as a Row.
func HeaderRow() Row {
	row := make(Row, len(Header))
	for i, h := range Header {
		row[i] = Text(h)
	}
	return row
}

// SourceFormat identifies the kind of file a sheet was read from.
type SourceFormat string

const (
	FormatCSV  SourceFormat = "csv"
	FormatXLSX SourceFormat = "xlsx"
	FormatXLS  SourceFormat = "xls"
)

// Document is one loaded statement: the raw sheet plus the name it came from.
// It replaces any process-wide "current file" state; callers pass it around.
type Document struct {
	FileName string
	BaseName string
	Format   SourceFormat
	Sheet    Sheet
}
