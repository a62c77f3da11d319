package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
)

func TestWrite(t *testing.T) {
	yt := models.YearTable{
		Indicator: "coal",
		Years:     []int{1998, 1999},
		Countries: []string{"Australia", "Japan"},
		Columns: map[string][]float64{
			"Australia": {75, 74},
			"Japan":     {18.25, 19.5},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, yt); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	tests := []string{"YEARS", "AUSTRALIA", "JAPAN", "1998", "1999", "75.00", "18.25", "19.50", "coal"}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "1998") > strings.Index(out, "1999") {
		t.Error("years not in row order")
	}
}

func TestWriteMissingColumn(t *testing.T) {
	yt := models.YearTable{
		Years:     []int{2000},
		Countries: []string{"Nowhere"},
		Columns:   map[string][]float64{},
	}

	var buf bytes.Buffer
	if err := Write(&buf, yt); err == nil {
		t.Error("expected error for a country without a column")
	}
}
