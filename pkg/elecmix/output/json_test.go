package output

import (
	"strings"
	"testing"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
)

func TestChartsToJSON(t *testing.T) {
	charts := map[string][]models.Chart{
		"Report": {{Name: "Chart 1", ChartType: "Pie", From: "B3"}},
	}

	compact, err := ChartsToJSON(charts, false)
	if err != nil {
		t.Fatalf("ChartsToJSON failed: %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Error("compact output contains newlines")
	}
	if !strings.Contains(string(compact), `"chart_type":"Pie"`) {
		t.Errorf("unexpected output: %s", compact)
	}

	pretty, err := ChartsToJSON(charts, true)
	if err != nil {
		t.Fatalf("ChartsToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Errorf("pretty output not indented: %s", pretty)
	}
}
