package elecmix

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
)

// Indicator names as published in the World Development Indicators export.
const (
	IndicatorCoal       = "Electricity production from coal sources (% of total)"
	IndicatorNaturalGas = "Electricity production from natural gas sources (% of total)"
	IndicatorOil        = "Electricity production from oil sources (% of total)"
	IndicatorRenewable  = "Electricity production from renewable sources, excluding hydroelectric (% of total)"
	IndicatorHydro      = "Electricity production from hydroelectric sources (% of total)"
)

const percentLabel = "Percentage (Total %)"

const defaultCaption = `The analysis of electricity production trends from 1998 to
2015 reveals significant shifts in energy sources for selected
countries. Notably, coal-based production witnessed a decline,
with Australia leading in renewable energy adoption, reaching
62.4% in 2015. In 2005, natural gas played a substantial role,
with Malaysia showing the highest percentage at 70.2%. The pie
chart showcases the diversity in oil-based electricity production
in 2010, with Japan leading at 43%. Additionally,
the horizontal bar plot illustrates the prominence of
hydroelectric sources in 2000, especially in India 13.2% and Malaysia 10%.
Renewable sources, excluding hydroelectric, witness a positive trajectory,
with United Kingdom displaying a remarkable increase of more than 20%.
Overall, these visualizations underscore the global trajectory
towards sustainable energy practices and highlight the unique
contributions of each country to this pivotal transition.`

// DefaultDefinition returns the fixed five-panel report.
func DefaultDefinition() models.Definition {
	return models.Definition{
		Title:     "Analysis of Global Electricity Production Trends (1998-2015)",
		Caption:   defaultCaption,
		Countries: []string{"Australia", "India", "United Kingdom", "Malaysia", "Japan"},
		FirstYear: 1998,
		LastYear:  2015,
		Panels: []models.PanelSpec{
			{
				Kind:      models.PanelLine,
				Indicator: IndicatorCoal,
				Title:     "Electricity Production from Coal Sources",
				XLabel:    "Years",
				YLabel:    percentLabel,
			},
			{
				Kind:      models.PanelDot,
				Indicator: IndicatorNaturalGas,
				Title:     "Electricity Production from Natural Gas Sources",
				XLabel:    "Years",
				YLabel:    percentLabel,
			},
			{
				Kind:      models.PanelPie,
				Indicator: IndicatorOil,
				Title:     "Electricity Production from Oil Sources (2010)",
				Years:     []int{2010},
			},
			{
				Kind:      models.PanelBar,
				Indicator: IndicatorRenewable,
				Title:     "Electricity Production from Renewable Sources, excluding hydroelectric",
				XLabel:    "Years",
				YLabel:    percentLabel,
				Years:     []int{2015},
			},
			{
				Kind:      models.PanelHorizontalBar,
				Indicator: IndicatorHydro,
				Title:     "Electricity Production from Hydroelectric Sources",
				XLabel:    percentLabel,
				YLabel:    "Years",
				Years:     []int{2000, 2015},
			},
		},
	}
}

// LoadDefinition decodes a TOML report definition over DefaultDefinition.
// Keys absent from the file keep their default values; a panels array, when
// present, replaces the default panels entirely. Unknown keys are rejected.
func LoadDefinition(path string) (models.Definition, error) {
	def := DefaultDefinition()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return def, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return def, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, ok := raw["panels"]; ok {
		def.Panels = nil
	}
	if _, ok := raw["countries"]; ok {
		def.Countries = nil
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return def, fmt.Errorf("%w: %s: unknown keys\n%s", ErrInvalidDefinition, path, strict.String())
		}
		return def, fmt.Errorf("parse %s: %w", path, err)
	}
	return def, ValidateDefinition(def)
}

// ValidateDefinition checks that a definition fits the fixed 3x2 layout.
func ValidateDefinition(def models.Definition) error {
	if len(def.Panels) == 0 || len(def.Panels) > 5 {
		return fmt.Errorf("%w: %d panels (want 1 to 5)", ErrInvalidDefinition, len(def.Panels))
	}
	if len(def.Countries) == 0 {
		return fmt.Errorf("%w: no countries", ErrInvalidDefinition)
	}
	if len(def.YearRange()) == 0 {
		return fmt.Errorf("%w: empty year range %d-%d", ErrInvalidDefinition, def.FirstYear, def.LastYear)
	}

	for i, p := range def.Panels {
		switch p.Kind {
		case models.PanelLine, models.PanelDot:
		case models.PanelPie, models.PanelBar, models.PanelHorizontalBar:
			if len(p.Years) == 0 {
				return fmt.Errorf("%w: panel %d (%s) needs years", ErrInvalidDefinition, i+1, p.Kind)
			}
		default:
			return fmt.Errorf("%w: panel %d has unknown kind %q", ErrInvalidDefinition, i+1, p.Kind)
		}
		if p.Indicator == "" {
			return fmt.Errorf("%w: panel %d has no indicator", ErrInvalidDefinition, i+1)
		}
	}
	return nil
}
