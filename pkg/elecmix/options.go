// Package elecmix renders the electricity production report from an indicator export.
package elecmix

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

// Format represents the output image format.
type Format string

const (
	// FormatPNG writes a raster PNG at Options.DPI.
	FormatPNG Format = "png"
	// FormatJPEG writes a raster JPEG at Options.DPI.
	FormatJPEG Format = "jpg"
	// FormatTIFF writes a raster TIFF at Options.DPI.
	FormatTIFF Format = "tiff"
	// FormatSVG writes a vector SVG.
	FormatSVG Format = "svg"
	// FormatPDF writes a vector PDF.
	FormatPDF Format = "pdf"
)

// Options configures one generation run.
type Options struct {
	// Input is the CSV or XLSX indicator export.
	Input string
	// Sheet selects the XLSX sheet. Empty means the first sheet.
	Sheet string
	// Output is the composed image path.
	Output string
	// Format overrides the format inferred from Output's extension.
	Format Format
	// DPI applies to raster formats.
	DPI float64
	// Width and Height give the figure size in inches.
	Width  float64
	Height float64
	// WorkbookPath, if set, receives the reshaped tables and native charts.
	WorkbookPath string
	// PanelsDir, if set, receives one image per panel.
	PanelsDir string
	// Logger receives progress lines. Nil disables logging.
	Logger *log.Logger
}

// DefaultOptions returns the options of the original fixed report run.
func DefaultOptions() Options {
	return Options{
		Input:  "WORLDBANK_INDICATORS.csv",
		Output: "electricity_report.png",
		DPI:    300,
		Width:  16,
		Height: 15,
	}
}

// ResolveFormat returns Format if set, otherwise the format implied by Output.
func (o Options) ResolveFormat() (Format, error) {
	if o.Format != "" {
		return ParseFormat(string(o.Format))
	}
	ext := strings.TrimPrefix(filepath.Ext(o.Output), ".")
	if ext == "" {
		return FormatPNG, nil
	}
	return ParseFormat(ext)
}

// Validate checks the figure size and resolution, and that every requested
// output path can be written in a supported format.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: figure size %gx%g in", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.DPI <= 0 {
		return fmt.Errorf("%w: dpi %g", ErrInvalidOptions, o.DPI)
	}
	if o.Output == "" {
		return fmt.Errorf("%w: no output path", ErrInvalidOptions)
	}
	if _, err := o.ResolveFormat(); err != nil {
		return err
	}
	if o.WorkbookPath != "" {
		if ext := strings.ToLower(filepath.Ext(o.WorkbookPath)); ext != ".xlsx" {
			return fmt.Errorf("%w: workbook %s", ErrUnsupportedFormat, o.WorkbookPath)
		}
	}
	return nil
}

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "svg":
		return FormatSVG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}
