package reader

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// readXLSX reads the first worksheet with raw (unformatted) cell values.
// Numeric cells become number cells so date serials survive untouched.
func readXLSX(data []byte) (models.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	sheet := make(models.Sheet, len(rows))
	for r, values := range rows {
		row := make(models.Row, len(values))
		for c, value := range values {
			row[c] = xlsxCell(f, name, c, r, value)
		}
		sheet[r] = row
	}
	return sheet, nil
}

func xlsxCell(f *excelize.File, sheet string, col, row int, value string) models.Cell {
	if value == "" {
		return models.Cell{}
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return textCell(value)
	}
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return textCell(value)
	}

	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if n, ok := parseFinite(value); ok {
			return models.Number(n)
		}
	}
	return textCell(value)
}
