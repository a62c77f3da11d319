package elecmix

import (
	"fmt"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/compose"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/loader"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/render"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/reshape"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/workbook"
	"gonum.org/v1/plot/vg"
)

// Size of each image written to Options.PanelsDir, in inches.
const (
	panelWidth  = 8
	panelHeight = 5
)

// Generate loads opts.Input, builds every panel of def and writes the
// composed report, plus the per-panel images and workbook when requested.
func Generate(opts Options, def models.Definition) (*models.Report, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, err := opts.ResolveFormat()
	if err != nil {
		return nil, err
	}

	opts.logf("loading %s", opts.Input)
	raw, err := loader.Load(opts.Input, opts.Sheet)
	if err != nil {
		return nil, err
	}
	opts.logf("loaded %d rows, %d columns", raw.Nrow(), len(raw.Names()))

	years := def.YearRange()
	report := &models.Report{Title: def.Title}
	surfaces := make([]*render.Surface, 0, len(def.Panels))
	exports := make([]workbook.Panel, 0, len(def.Panels))
	names := make([]string, 0, len(def.Panels))

	for _, spec := range def.Panels {
		ct, yt, err := reshape.Extract(raw, spec.Indicator, years)
		if err != nil {
			return nil, NewPanelError(spec.Title, "reshape", err)
		}

		s := render.NewSurface()
		if err := render.Panel(s, spec, ct, yt, def.Countries); err != nil {
			return nil, NewPanelError(spec.Title, "render", err)
		}
		opts.logf("rendered %s panel %q", spec.Kind, spec.Title)

		surfaces = append(surfaces, s)
		exports = append(exports, workbook.Panel{Spec: spec, Table: yt})
		names = append(names, string(spec.Kind))
		report.Panels = append(report.Panels, spec.Title)
	}

	composed, err := compose.New(def.Title, def.Caption, surfaces)
	if err != nil {
		return nil, err
	}

	layout := compose.Layout{
		Width:  vg.Length(opts.Width) * vg.Inch,
		Height: vg.Length(opts.Height) * vg.Inch,
		DPI:    opts.DPI,
		Format: string(format),
	}
	if err := composed.WriteFile(opts.Output, layout); err != nil {
		return nil, fmt.Errorf("write %s: %w", opts.Output, err)
	}
	opts.logf("wrote %s", opts.Output)
	report.Files = append(report.Files, opts.Output)

	if opts.PanelsDir != "" {
		layout.Width = panelWidth * vg.Inch
		layout.Height = panelHeight * vg.Inch
		files, err := composed.WritePanels(opts.PanelsDir, names, layout)
		if err != nil {
			return nil, fmt.Errorf("write panels: %w", err)
		}
		opts.logf("wrote %d panel images to %s", len(files), opts.PanelsDir)
		report.Files = append(report.Files, files...)
	}

	if opts.WorkbookPath != "" {
		if err := workbook.Export(opts.WorkbookPath, def, exports); err != nil {
			return nil, fmt.Errorf("export workbook: %w", err)
		}
		opts.logf("wrote %s", opts.WorkbookPath)
		report.Files = append(report.Files, opts.WorkbookPath)
	}

	return report, nil
}

// PreviewTable loads input and reshapes one indicator over years.
func PreviewTable(input, sheet, indicator string, years []int) (models.YearTable, error) {
	raw, err := loader.Load(input, sheet)
	if err != nil {
		return models.YearTable{}, err
	}
	_, yt, err := reshape.Extract(raw, indicator, years)
	return yt, err
}
