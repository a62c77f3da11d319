// Package compose lays report panels out on a fixed grid and writes the image.
package compose

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/render"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Grid shape. The last cell never holds a panel; the caption is drawn there.
const (
	Rows = 3
	Cols = 2
)

// MaxPanels is the number of grid cells available to panels.
const MaxPanels = Rows*Cols - 1

const (
	titleSize      = 26
	titleBand      = 0.07 // share of the figure height above the grid
	captionMaxSize = 14
	captionMinSize = 6
	lineSpacing    = 1.3
)

// ErrTooManyPanels indicates more surfaces than free grid cells.
var ErrTooManyPanels = errors.New("too many panels for grid")

// ErrInvalidLayout indicates a non-positive canvas size or resolution.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout describes the output canvas.
type Layout struct {
	Width  vg.Length
	Height vg.Length
	// DPI applies to raster formats only.
	DPI float64
	// Format is png, jpg, tiff, svg or pdf.
	Format string
}

// Validate checks the size, and the resolution of raster formats.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrInvalidLayout, l.Width, l.Height)
	}
	if l.raster() && l.DPI <= 0 {
		return fmt.Errorf("%w: dpi %v", ErrInvalidLayout, l.DPI)
	}
	return nil
}

func (l Layout) raster() bool {
	switch l.Format {
	case "png", "jpg", "tiff":
		return true
	}
	return false
}

// boldTitle reports whether the title face can be bold. The PDF backend
// only carries the regular Liberation faces.
func (l Layout) boldTitle() bool {
	return l.Format != "pdf"
}

// Report is the composed figure: title, panels in row-major order and caption.
type Report struct {
	Title    string
	Caption  string
	Surfaces []*render.Surface
}

// New creates a report, rejecting more panels than the grid can hold.
func New(title, caption string, surfaces []*render.Surface) (*Report, error) {
	if len(surfaces) > MaxPanels {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPanels, len(surfaces), MaxPanels)
	}
	return &Report{Title: title, Caption: caption, Surfaces: surfaces}, nil
}

// Draw renders the whole figure onto dc with a bold title.
func (r *Report) Draw(dc draw.Canvas) {
	r.draw(dc, true)
}

func (r *Report) draw(dc draw.Canvas, bold bool) {
	dc.SetColor(render.Beige)
	dc.Fill(dc.Rectangle.Path())

	height := dc.Rectangle.Size().Y
	band := height * titleBand
	r.drawTitle(draw.Crop(dc, 0, 0, height-band, 0), bold)

	grid := draw.Crop(dc, 0, 0, 0, -band)
	tiles := draw.Tiles{
		Rows:      Rows,
		Cols:      Cols,
		PadX:      vg.Points(36),
		PadY:      vg.Points(36),
		PadLeft:   vg.Points(24),
		PadRight:  vg.Points(24),
		PadBottom: vg.Points(24),
	}

	for i, s := range r.Surfaces {
		s.Draw(tiles.At(grid, i%Cols, i/Cols))
	}
	r.drawCaption(tiles.At(grid, Cols-1, Rows-1))
}

func (r *Report) drawTitle(c draw.Canvas, bold bool) {
	if r.Title == "" {
		return
	}
	sty := textStyle(titleSize)
	if bold {
		sty.Font.Weight = xfont.WeightBold
	}
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter

	size := c.Rectangle.Size()
	center := vg.Point{X: c.Min.X + size.X/2, Y: c.Min.Y + size.Y/2}

	pad := vg.Points(6)
	w := sty.Width(r.Title) + 2*pad
	h := sty.Height(r.Title) + 2*pad
	backing := vg.Rectangle{
		Min: vg.Point{X: center.X - w/2, Y: center.Y - h/2},
		Max: vg.Point{X: center.X + w/2, Y: center.Y + h/2},
	}
	c.SetColor(render.LightYellow)
	c.Fill(backing.Path())

	c.FillText(sty, center, r.Title)
}

// drawCaption writes the caption top-left aligned, shrinking the font until
// every line fits the cell.
func (r *Report) drawCaption(c draw.Canvas) {
	if r.Caption == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(r.Caption), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	size := c.Rectangle.Size()

	sty := fitCaption(lines, size.X, size.Y)
	step := sty.Font.Size * lineSpacing
	pt := vg.Point{X: c.Min.X, Y: c.Max.Y}
	for _, line := range lines {
		pt.Y -= step
		c.FillText(sty, pt, line)
	}
}

func fitCaption(lines []string, width, height vg.Length) text.Style {
	var sty text.Style
	for pts := captionMaxSize; pts >= captionMinSize; pts-- {
		sty = textStyle(vg.Length(pts))
		if vg.Length(len(lines))*sty.Font.Size*lineSpacing > height {
			continue
		}
		fits := true
		for _, line := range lines {
			if sty.Width(line) > width {
				fits = false
				break
			}
		}
		if fits {
			return sty
		}
	}
	return sty
}

func textStyle(points vg.Length) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, vg.Points(float64(points))),
		XAlign:  text.XLeft,
		YAlign:  text.YBottom,
		Handler: plot.DefaultTextHandler,
	}
}

// Write renders the report in l.Format and writes it to w.
func (r *Report) Write(w io.Writer, l Layout) (int64, error) {
	canvas, err := newCanvas(l)
	if err != nil {
		return 0, err
	}
	r.draw(draw.New(canvas), l.boldTitle())
	return canvas.WriteTo(w)
}

// WriteFile renders the report to path. A failed write removes the file.
func (r *Report) WriteFile(path string, l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := r.Write(w, l)
		return err
	})
}

// writeFile creates path and fills it with write, removing it on failure.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// WritePanels writes each surface to dir as its own image of size l and
// returns the file paths in panel order.
func (r *Report) WritePanels(dir string, names []string, l Layout) ([]string, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for i, s := range r.Surfaces {
		name := fmt.Sprintf("panel%d", i+1)
		if i < len(names) && names[i] != "" {
			name = fmt.Sprintf("panel%d_%s", i+1, names[i])
		}
		path := filepath.Join(dir, name+"."+l.Format)

		canvas, err := newCanvas(l)
		if err != nil {
			return paths, err
		}
		dc := draw.New(canvas)
		dc.SetColor(render.Beige)
		dc.Fill(dc.Rectangle.Path())
		s.Draw(draw.Crop(dc, vg.Points(8), -vg.Points(8), vg.Points(8), -vg.Points(8)))

		err = writeFile(path, func(w io.Writer) error {
			_, err := canvas.WriteTo(w)
			return err
		})
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func newCanvas(l Layout) (vg.CanvasWriterTo, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	switch l.Format {
	case "png", "jpg", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(l.Width, l.Height), vgimg.UseDPI(int(l.DPI)))
		switch l.Format {
		case "jpg":
			return vgimg.JpegCanvas{Canvas: c}, nil
		case "tiff":
			return vgimg.TiffCanvas{Canvas: c}, nil
		}
		return vgimg.PngCanvas{Canvas: c}, nil
	case "svg", "pdf":
		return draw.NewFormattedCanvas(l.Width, l.Height, l.Format)
	}
	return nil, fmt.Errorf("unsupported format %q", l.Format)
}
