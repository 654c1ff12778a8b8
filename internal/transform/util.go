package transform

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// excelEpochOffset is the number of days between the spreadsheet serial
// epoch (1899-12-30) and 1970-01-01.
const excelEpochOffset = 25569

var (
	// Everything that is not a digit or a decimal comma.
	amountNoise = regexp.MustCompile(`[^\d,]`)
	// Longest leading decimal literal, the way a lenient float parser reads it.
	floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseAmount converts a raw amount cell into a signed decimal number.
//
// Numeric cells are returned as-is and empty cells yield 0. Text keeps its
// leading "-" sign, drops every character other than digits and commas, and
// reads the first comma as the decimal separator, so "1.234,56" becomes
// 1234.56. Text that still does not parse yields 0.
func ParseAmount(c models.Cell) float64 {
	switch c.Kind {
	case models.CellNumber:
		return c.Number
	case models.CellEmpty:
		return 0
	}

	negative := strings.HasPrefix(c.Text, "-")
	cleaned := amountNoise.ReplaceAllString(c.Text, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if negative {
		cleaned = "-" + cleaned
	}
	return parseFloatPrefix(cleaned)
}

// FormatDate expands a dd/mm/yy text date to dd/mm/yyyy. Two-digit years
// below 50 land in the 2000s, the rest in the 1900s. Cells that are not a
// three-part slash date pass through unchanged.
func FormatDate(c models.Cell) models.Cell {
	if !c.IsText() {
		return c
	}
	parts := strings.Split(c.Text, "/")
	if len(parts) != 3 {
		return c
	}
	day, month, year := parts[0], parts[1], parts[2]
	if utf8.RuneCountInString(year) == 2 {
		if n, ok := parseIntPrefix(year); ok && n < 50 {
			year = "20" + year
		} else {
			year = "19" + year
		}
	}
	return models.Text(day + "/" + month + "/" + year)
}

// CleanLabel removes commas from text cells so labels never split a CSV
// line. Other cells are returned unchanged.
func CleanLabel(c models.Cell) models.Cell {
	if !c.IsText() {
		return c
	}
	return models.Text(strings.ReplaceAll(c.Text, ",", ""))
}

// ExcelDateToTime converts a spreadsheet day-count serial to a UTC time.
// Fractions of a day are discarded.
func ExcelDateToTime(serial float64) time.Time {
	days := int64(math.Floor(serial - excelEpochOffset))
	return time.Unix(days*86400, 0).UTC()
}

// parseFloatPrefix reads the longest leading float literal of s after
// leading whitespace. Anything unreadable, and negative zero, yield 0.
func parseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	return f
}

// parseIntPrefix reads the leading base-10 integer of s.
func parseIntPrefix(s string) (int, bool) {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// spliceRow removes count cells starting at start, clamping both to the row
// length. The row is modified in place and the shortened slice returned.
func spliceRow(row models.Row, start, count int) models.Row {
	if start >= len(row) || count <= 0 {
		return row
	}
	end := start + count
	if end > len(row) {
		end = len(row)
	}
	return append(row[:start], row[end:]...)
}

// columns holds the source positions of the four normalized columns.
// A position of -1 means the header has no such column.
type columns struct {
	label, date, reference, amount int
}

// locateColumns finds the normalized column names in a header row.
func locateColumns(header models.Row) columns {
	return columns{
		label:     headerIndex(header, models.ColumnLabel),
		date:      headerIndex(header, models.ColumnDate),
		reference: headerIndex(header, models.ColumnReference),
		amount:    headerIndex(header, models.ColumnAmount),
	}
}

func headerIndex(header models.Row, name string) int {
	for i, c := range header {
		if c.IsText() && c.Text == name {
			return i
		}
	}
	return -1
}

// textRow builds a row of text cells.
func textRow(values ...string) models.Row {
	row := make(models.Row, len(values))
	for i, v := range values {
		row[i] = models.Text(v)
	}
	return row
}

// isText reports whether c is a text cell holding exactly s.
func isText(c models.Cell, s string) bool {
	return c.IsText() && c.Text == s
}

// negate flips the sign of an amount cell. Text amounts get a leading "-"
// and are left for the amount parser. Number cells are negated numerically,
// never by prefixing text.
func negate(c models.Cell) models.Cell {
	if c.IsNumber() {
		return models.Number(-c.Number)
	}
	return models.Text("-" + c.String())
}
