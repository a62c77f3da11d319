package loader

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for locating the data block in a sheet.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.5,
		MinNonemptyCells: 4,
	}
}

// tableBounds is a 0-based inclusive cell rectangle.
type tableBounds struct {
	minRow, maxRow int
	minCol, maxCol int
}

// LoadXLSX loads a raw table from a DataBank Excel export. An empty sheet
// name selects the first sheet.
func LoadXLSX(path, sheet string) (*RawTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrMalformed, sheet, err)
	}

	b, ok := detectTable(rows, DefaultTableParams())
	if !ok {
		return nil, fmt.Errorf("%w: no table found in sheet %q", ErrMalformed, sheet)
	}

	return fromRecords(cropRows(rows, b))
}

// detectTable returns the first block of contiguous non-empty rows that is
// dense enough to be a table. Sparse blocks such as title or note rows are
// skipped.
func detectTable(rows [][]string, params TableDetectionParams) (tableBounds, bool) {
	for start := 0; start < len(rows); {
		if isBlank(rows[start]) {
			start++
			continue
		}
		b := tableBounds{minRow: start, maxRow: start, minCol: -1, maxCol: -1}
		for rowIdx := start; rowIdx < len(rows) && !isBlank(rows[rowIdx]); rowIdx++ {
			b.maxRow = rowIdx
			for colIdx, cell := range rows[rowIdx] {
				if cell == "" {
					continue
				}
				if b.minCol < 0 || colIdx < b.minCol {
					b.minCol = colIdx
				}
				if colIdx > b.maxCol {
					b.maxCol = colIdx
				}
			}
		}
		if dense(rows, b, params) {
			return b, true
		}
		start = b.maxRow + 1
	}
	return tableBounds{}, false
}

func dense(rows [][]string, b tableBounds, params TableDetectionParams) bool {
	total := (b.maxRow - b.minRow + 1) * (b.maxCol - b.minCol + 1)
	nonEmpty := countNonEmptyCells(rows, b)
	if nonEmpty < params.MinNonemptyCells {
		return false
	}
	return float64(nonEmpty)/float64(total) >= params.DensityMin
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, b tableBounds) int {
	count := 0
	for rowIdx := b.minRow; rowIdx <= b.maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := b.minCol; colIdx <= b.maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}

// cropRows copies the bounded region, padding rows that excelize trimmed.
func cropRows(rows [][]string, b tableBounds) [][]string {
	width := b.maxCol - b.minCol + 1
	out := make([][]string, 0, b.maxRow-b.minRow+1)
	for rowIdx := b.minRow; rowIdx <= b.maxRow; rowIdx++ {
		rec := make([]string, width)
		row := rows[rowIdx]
		for c := 0; c < width; c++ {
			if src := b.minCol + c; src < len(row) {
				rec[c] = row[src]
			}
		}
		out = append(out, rec)
	}
	return out
}
