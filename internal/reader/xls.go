package reader

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/record"
	"github.com/shakinm/xlsReader/xls/structure"
	"golang.org/x/text/encoding/charmap"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

const (
	rkIntRange = 1 << 30
	rkIntSign  = 1 << 29
)

// readXLS reads the first worksheet of a legacy BIFF8 workbook. Cells keep
// their stored type: numbers (date serials included) become number cells and
// labels stay text. Formula cells are not decoded and read as empty.
func readXLS(data []byte) (sheet models.Sheet, err error) {
	// The BIFF decoder panics on some truncated files.
	defer func() {
		if rec := recover(); rec != nil {
			sheet, err = nil, fmt.Errorf("malformed xls workbook: %v", rec)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}
	// Unreadable workbook streams come back without sheets instead of an error.
	if len(wb.GetSheets()) == 0 {
		return nil, ErrNoSheets
	}

	ws, err := wb.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	rows := ws.GetRows()
	sheet = make(models.Sheet, 0, len(rows))
	for _, row := range rows {
		cols := row.GetCols()
		cells := make(models.Row, len(cols))
		for j, col := range cols {
			cells[j] = xlsCell(col)
		}
		sheet = append(sheet, trimEmpty(cells))
	}
	return sheet, nil
}

func xlsCell(c structure.CellData) models.Cell {
	switch v := c.(type) {
	case *record.Blank, *record.FakeBlank:
		return models.Cell{}
	case *record.Number:
		if f := v.GetFloat64(); !math.IsNaN(f) && !math.IsInf(f, 0) {
			return models.Number(f)
		}
		return models.Cell{}
	case *record.Rk:
		return models.Number(rkValue(v))
	case *record.LabelSSt:
		return textCell(latin1(v.GetString()))
	case *record.LabelBIFF8:
		return textCell(label8(v.GetString()))
	default:
		return textCell(c.GetString())
	}
}

// rkValue restores the sign of 30-bit RK integers, which the decoder reads
// unsigned. RK values scaled by 100 are only distinguishable from the
// float form by magnitude, so anything at or above 2^29/100 is taken as a
// negative integer amount.
func rkValue(rk *record.Rk) float64 {
	if i := rk.GetInt64(); i != 0 {
		if i >= rkIntSign {
			i -= rkIntRange
		}
		return float64(i)
	}
	f := rk.GetFloat64()
	if n := math.Round(f * 100); n >= rkIntSign && n < rkIntRange && math.Abs(n-f*100) < 1e-4 {
		return (n - rkIntRange) / 100
	}
	return f
}

// latin1 decodes shared strings stored in the compressed 8-bit form. Those
// bytes are the low half of UTF-16 code units, which is ISO 8859-1.
func latin1(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if out, err := charmap.ISO8859_1.NewDecoder().String(s); err == nil {
		return out
	}
	return s
}

// label8 undoes the windows-1251 decoding applied to compressed LABEL
// records. Text that cannot be re-encoded was stored as UTF-16 and is kept.
func label8(s string) string {
	if isASCII(s) {
		return s
	}
	raw, err := charmap.Windows1251.NewEncoder().String(s)
	if err != nil {
		return s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(raw)
	if err != nil {
		return s
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// trimEmpty drops trailing empty cells so the row width matches the last
// stored value. padRows restores the common width afterwards.
func trimEmpty(row models.Row) models.Row {
	end := len(row)
	for end > 0 && row[end-1].IsEmpty() {
		end--
	}
	return row[:end]
}
