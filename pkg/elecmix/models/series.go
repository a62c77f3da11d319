// Package models defines data structures for the electricity report.
package models

import (
	"fmt"
	"strconv"
)

// YearsColumn is the name under which a YearTable exposes its row index.
const YearsColumn = "Years"

// CountryTable holds one indicator in country-major orientation.
type CountryTable struct {
	// Indicator is the series name the rows were filtered on.
	Indicator string `json:"indicator"`
	// Countries lists row labels in source order.
	Countries []string `json:"countries"`
	// Years lists column labels in requested order.
	Years []int `json:"years"`
	// Values is indexed [country][year].
	Values [][]float64 `json:"values"`
}

// YearValues returns the cross-country snapshot for one year.
func (t CountryTable) YearValues(year int) ([]float64, error) {
	j := indexOfYear(t.Years, year)
	if j < 0 {
		return nil, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}
	out := make([]float64, len(t.Countries))
	for i := range t.Countries {
		out[i] = t.Values[i][j]
	}
	return out, nil
}

// Row returns the values of one country across all years.
func (t CountryTable) Row(country string) ([]float64, error) {
	for i, c := range t.Countries {
		if c == country {
			return t.Values[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, country)
}

// YearTable holds one indicator in year-major orientation: one row per year,
// one column per country.
type YearTable struct {
	// Indicator is the series name the rows were filtered on.
	Indicator string `json:"indicator"`
	// Years is the row index.
	Years []int `json:"years"`
	// Countries lists column names in source order.
	Countries []string `json:"countries"`
	// Columns maps country name to its values, aligned with Years.
	Columns map[string][]float64 `json:"columns"`
}

// Column returns a column by name. YearsColumn yields the row index.
func (t YearTable) Column(name string) ([]float64, error) {
	if name == YearsColumn {
		out := make([]float64, len(t.Years))
		for i, y := range t.Years {
			out[i] = float64(y)
		}
		return out, nil
	}
	col, ok := t.Columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return col, nil
}

// FilterYears keeps the rows for the given years, in the given order.
func (t YearTable) FilterYears(years ...int) (YearTable, error) {
	idx := make([]int, len(years))
	for k, y := range years {
		j := indexOfYear(t.Years, y)
		if j < 0 {
			return YearTable{}, fmt.Errorf("%w: %d", ErrYearNotFound, y)
		}
		idx[k] = j
	}

	out := YearTable{
		Indicator: t.Indicator,
		Years:     append([]int(nil), years...),
		Countries: append([]string(nil), t.Countries...),
		Columns:   make(map[string][]float64, len(t.Columns)),
	}
	for _, c := range t.Countries {
		src := t.Columns[c]
		col := make([]float64, len(idx))
		for k, j := range idx {
			col[k] = src[j]
		}
		out.Columns[c] = col
	}
	return out, nil
}

// YearLabels returns the row index as strings.
func (t YearTable) YearLabels() []string {
	out := make([]string, len(t.Years))
	for i, y := range t.Years {
		out[i] = strconv.Itoa(y)
	}
	return out
}

// Observation is one (year, country, value) triple of a melted table.
type Observation struct {
	Year    int     `json:"year"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

func indexOfYear(years []int, year int) int {
	for i, y := range years {
		if y == year {
			return i
		}
	}
	return -1
}
