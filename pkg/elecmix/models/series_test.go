package models

import (
	"errors"
	"reflect"
	"testing"
)

func sampleYearTable() YearTable {
	return YearTable{
		Indicator: "coal",
		Years:     []int{1998, 1999, 2000},
		Countries: []string{"Australia", "Japan"},
		Columns: map[string][]float64{
			"Australia": {75, 74, 73},
			"Japan":     {18, 19, 20},
		},
	}
}

func TestYearTableColumn(t *testing.T) {
	yt := sampleYearTable()

	tests := []struct {
		name    string
		want    []float64
		wantErr error
	}{
		{YearsColumn, []float64{1998, 1999, 2000}, nil},
		{"Japan", []float64{18, 19, 20}, nil},
		{"Peru", nil, ErrColumnNotFound},
	}

	for _, tt := range tests {
		got, err := yt.Column(tt.name)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Column(%q) error = %v, expected %v", tt.name, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Column(%q) = %v, expected %v", tt.name, got, tt.want)
		}
	}
}

func TestFilterYears(t *testing.T) {
	yt := sampleYearTable()

	sub, err := yt.FilterYears(2000, 1998)
	if err != nil {
		t.Fatalf("FilterYears failed: %v", err)
	}
	if !reflect.DeepEqual(sub.Years, []int{2000, 1998}) {
		t.Errorf("years = %v", sub.Years)
	}
	if !reflect.DeepEqual(sub.Columns["Australia"], []float64{73, 75}) {
		t.Errorf("Australia = %v", sub.Columns["Australia"])
	}
	if !reflect.DeepEqual(sub.YearLabels(), []string{"2000", "1998"}) {
		t.Errorf("labels = %v", sub.YearLabels())
	}

	// The source table is untouched.
	if yt.Columns["Australia"][0] != 75 {
		t.Error("FilterYears modified its receiver")
	}

	if _, err := yt.FilterYears(2015); !errors.Is(err, ErrYearNotFound) {
		t.Errorf("FilterYears(2015) error = %v, expected ErrYearNotFound", err)
	}
}

func TestCountryTable(t *testing.T) {
	ct := CountryTable{
		Countries: []string{"India", "Japan"},
		Years:     []int{2010, 2015},
		Values:    [][]float64{{1, 2}, {3, 4}},
	}

	got, err := ct.YearValues(2015)
	if err != nil {
		t.Fatalf("YearValues failed: %v", err)
	}
	if !reflect.DeepEqual(got, []float64{2, 4}) {
		t.Errorf("YearValues(2015) = %v", got)
	}
	if _, err := ct.YearValues(2011); !errors.Is(err, ErrYearNotFound) {
		t.Errorf("YearValues(2011) error = %v, expected ErrYearNotFound", err)
	}

	row, err := ct.Row("Japan")
	if err != nil || !reflect.DeepEqual(row, []float64{3, 4}) {
		t.Errorf("Row(Japan) = %v, %v", row, err)
	}
	if _, err := ct.Row("Peru"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Row(Peru) error = %v, expected ErrColumnNotFound", err)
	}
}

func TestYearRange(t *testing.T) {
	tests := []struct {
		first, last int
		want        int
	}{
		{1998, 2015, 18},
		{2000, 2000, 1},
		{2015, 1998, 0},
	}

	for _, tt := range tests {
		d := Definition{FirstYear: tt.first, LastYear: tt.last}
		if got := len(d.YearRange()); got != tt.want {
			t.Errorf("YearRange(%d, %d) has %d years, expected %d", tt.first, tt.last, got, tt.want)
		}
	}
}
