// Package loader reads indicator exports into an in-memory raw table.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
)

// Identifier columns of a World Development Indicators export.
const (
	ColCountryName = "Country Name"
	ColCountryCode = "Country Code"
	ColSeriesName  = "Series Name"
	ColSeriesCode  = "Series Code"
)

// RequiredColumns must be present in every raw table.
var RequiredColumns = []string{ColCountryName, ColCountryCode, ColSeriesName, ColSeriesCode}

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrMalformed indicates the input could not be parsed as a table.
var ErrMalformed = errors.New("malformed input")

const utf8BOM = "\ufeff"

// RawTable is the whole input held as string columns.
type RawTable struct {
	df dataframe.DataFrame
}

// Frame returns the underlying dataframe.
func (t *RawTable) Frame() dataframe.DataFrame {
	return t.df
}

// Names returns the column names in file order.
func (t *RawTable) Names() []string {
	return t.df.Names()
}

// Nrow returns the number of data rows.
func (t *RawTable) Nrow() int {
	return t.df.Nrow()
}

// Records returns the header followed by every row.
func (t *RawTable) Records() [][]string {
	return t.df.Records()
}

// Load reads path as XLSX when its extension is .xlsx, otherwise as CSV.
func Load(path, sheet string) (*RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, sheet)
	}
	return LoadCSV(path)
}

// fromRecords builds a RawTable from header-first records, keeping every cell
// as a literal string.
func fromRecords(records [][]string) (*RawTable, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformed)
	}
	records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}

	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, col := range RequiredColumns {
		if !names[col] {
			return nil, fmt.Errorf("%w: %q", models.ErrColumnNotFound, col)
		}
	}

	return &RawTable{df: df}, nil
}
