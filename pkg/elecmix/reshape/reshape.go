// Package reshape turns raw indicator rows into per-country time series.
package reshape

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/loader"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
)

// ErrIndicatorNotFound indicates no row carries the requested series name.
var ErrIndicatorNotFound = errors.New("indicator not found")

// ErrDuplicateCountry indicates a country with more than one row for the
// same indicator.
var ErrDuplicateCountry = errors.New("duplicate country")

// NumericError reports a cell that does not hold a finite number.
type NumericError struct {
	Country string
	Column  string
	Value   string
	Err     error
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("non-numeric value %q for %q in column %q", e.Value, e.Country, e.Column)
}

func (e *NumericError) Unwrap() error {
	return e.Err
}

var errNotFinite = errors.New("value is not finite")

// YearColumn returns the export's column header for a year, e.g. "1998 [YR1998]".
func YearColumn(year int) string {
	return fmt.Sprintf("%d [YR%d]", year, year)
}

// Extract filters raw to one indicator, drops the identifier columns, renames
// the year columns to bare years and coerces every value to float64. It
// returns the result in both orientations.
func Extract(raw *loader.RawTable, indicator string, years []int) (models.CountryTable, models.YearTable, error) {
	df := raw.Frame()

	if !containsRecord(df.Col(loader.ColSeriesName).Records(), indicator) {
		return models.CountryTable{}, models.YearTable{}, fmt.Errorf("%w: %q", ErrIndicatorNotFound, indicator)
	}

	df = df.Filter(dataframe.F{
		Colname:    loader.ColSeriesName,
		Comparator: series.Eq,
		Comparando: indicator,
	})
	df = df.Drop([]string{loader.ColCountryCode, loader.ColSeriesCode, loader.ColSeriesName})
	if df.Err != nil {
		return models.CountryTable{}, models.YearTable{}, fmt.Errorf("filter %q: %w", indicator, df.Err)
	}

	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}

	keep := []string{loader.ColCountryName}
	for _, y := range years {
		col := YearColumn(y)
		if !names[col] {
			return models.CountryTable{}, models.YearTable{}, fmt.Errorf("%w: %q", models.ErrColumnNotFound, col)
		}
		label := strconv.Itoa(y)
		df = df.Rename(label, col)
		keep = append(keep, label)
	}
	df = df.Select(keep)
	if df.Err != nil {
		return models.CountryTable{}, models.YearTable{}, fmt.Errorf("select years: %w", df.Err)
	}

	countries := df.Col(loader.ColCountryName).Records()
	seen := make(map[string]bool, len(countries))
	for _, c := range countries {
		if seen[c] {
			return models.CountryTable{}, models.YearTable{}, fmt.Errorf("%w: %q for %q", ErrDuplicateCountry, c, indicator)
		}
		seen[c] = true
	}
	values := make([][]float64, len(countries))
	for i := range values {
		values[i] = make([]float64, len(years))
	}
	for j, y := range years {
		label := strconv.Itoa(y)
		for i, cell := range df.Col(label).Records() {
			v, err := parseNumber(cell)
			if err != nil {
				return models.CountryTable{}, models.YearTable{}, &NumericError{
					Country: countries[i],
					Column:  label,
					Value:   cell,
					Err:     err,
				}
			}
			values[i][j] = v
		}
	}

	ct := models.CountryTable{
		Indicator: indicator,
		Countries: countries,
		Years:     append([]int(nil), years...),
		Values:    values,
	}
	return ct, Transpose(ct), nil
}

// Transpose turns a country-major table into a year-major one.
func Transpose(ct models.CountryTable) models.YearTable {
	yt := models.YearTable{
		Indicator: ct.Indicator,
		Years:     append([]int(nil), ct.Years...),
		Countries: append([]string(nil), ct.Countries...),
		Columns:   make(map[string][]float64, len(ct.Countries)),
	}
	for i, c := range ct.Countries {
		yt.Columns[c] = append([]float64(nil), ct.Values[i]...)
	}
	return yt
}

// TransposeYears turns a year-major table back into a country-major one.
func TransposeYears(yt models.YearTable) models.CountryTable {
	ct := models.CountryTable{
		Indicator: yt.Indicator,
		Countries: append([]string(nil), yt.Countries...),
		Years:     append([]int(nil), yt.Years...),
		Values:    make([][]float64, len(yt.Countries)),
	}
	for i, c := range yt.Countries {
		ct.Values[i] = append([]float64(nil), yt.Columns[c]...)
	}
	return ct
}

// Melt flattens the given countries of a year-major table into observations,
// country by country. Every country must be a column of yt.
func Melt(yt models.YearTable, countries []string) ([]models.Observation, error) {
	out := make([]models.Observation, 0, len(countries)*len(yt.Years))
	for _, c := range countries {
		col, err := yt.Column(c)
		if err != nil {
			return nil, err
		}
		for i, y := range yt.Years {
			out = append(out, models.Observation{Year: y, Country: c, Value: col[i]})
		}
	}
	return out, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func containsRecord(records []string, want string) bool {
	for _, r := range records {
		if r == want {
			return true
		}
	}
	return false
}
