// Package plot draws the convergence chart of a sweep with the gg software renderer.
package plot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gaussquad/gaussquad/convergence"
)

// ErrNothingToPlot is returned when a series has no successful point.
var ErrNothingToPlot = errors.New("series has no successful point")

// Options are the layout and colors of a chart. Colors are hexadecimal strings.
type Options struct {
	Width, Height int
	Margin        float64

	Background     string
	LineColor      string
	FailureColor   string
	ReferenceColor string
	GridColor      string
	TextColor      string

	LineWidth    float64
	MarkerRadius float64

	// Title, XLabel and YLabel are drawn in the margins with the Go regular font.
	Title, XLabel, YLabel string
	// FontSize is the size in points of the labels and of the legend, zero for no text.
	FontSize float64

	// GridLines is the number of horizontal grid lines, zero for none.
	GridLines int
	// Reference draws a dashed line at the value of the last successful point.
	Reference bool
}

// DefaultOptions is an 800x500 chart with markers, grid, reference line, labels
// and a legend holding the last approximation.
var DefaultOptions = Options{
	Width:          800,
	Height:         500,
	Margin:         60,
	Background:     "#FFFFFF",
	LineColor:      "#1F77B4",
	FailureColor:   "#D62728",
	ReferenceColor: "#7F7F7F",
	GridColor:      "#E5E5E5",
	TextColor:      "#333333",
	LineWidth:      2,
	MarkerRadius:   4,
	Title:          "Convergence of the Gauss-Legendre approximations",
	XLabel:         "Number of points (N)",
	YLabel:         "Value of the integral",
	FontSize:       12,
	GridLines:      8,
	Reference:      true,
}

var goRegular = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// frame maps orders and values to pixel coordinates.
type frame struct {
	x0, x1, y0, y1 float64
	left, right    float64
	top, bottom    float64
}

func newFrame(series convergence.Series, opts Options) (f frame) {

	f.x0, f.x1 = math.Inf(1), math.Inf(-1)
	f.y0, f.y1 = math.Inf(1), math.Inf(-1)

	for _, p := range series.Points {
		f.x0 = math.Min(f.x0, float64(p.N))
		f.x1 = math.Max(f.x1, float64(p.N))
		if p.Succeeded() {
			f.y0 = math.Min(f.y0, p.Value)
			f.y1 = math.Max(f.y1, p.Value)
		}
	}

	if f.x0 == f.x1 {
		f.x0, f.x1 = f.x0-1, f.x1+1
	}

	pad := 0.05 * (f.y1 - f.y0)
	if pad == 0 {
		pad = math.Max(1, math.Abs(f.y0)) * 0.05
	}
	f.y0, f.y1 = f.y0-pad, f.y1+pad

	f.left, f.right = opts.Margin, float64(opts.Width)-opts.Margin
	f.top, f.bottom = opts.Margin, float64(opts.Height)-opts.Margin

	return
}

func (f frame) X(n int) float64 {
	return f.left + (float64(n)-f.x0)/(f.x1-f.x0)*(f.right-f.left)
}

func (f frame) Y(v float64) float64 {
	return f.bottom - (v-f.y0)/(f.y1-f.y0)*(f.bottom-f.top)
}

func draw(series convergence.Series, opts Options) (dc *gg.Context, err error) {

	if opts.Width <= 0 || opts.Height <= 0 || 2*opts.Margin >= float64(min(opts.Width, opts.Height)) {
		return nil, fmt.Errorf("invalid chart size %dx%d with margin %g", opts.Width, opts.Height, opts.Margin)
	}

	last, ok := series.Last()
	if !ok {
		return nil, ErrNothingToPlot
	}

	f := newFrame(series, opts)

	ctx := gg.NewContext(opts.Width, opts.Height)
	defer func() {
		if err != nil {
			ctx.Close()
		}
	}()
	dc = ctx

	dc.ClearWithColor(gg.Hex(opts.Background))

	dc.SetHexColor(opts.GridColor)
	dc.SetLineWidth(1)
	for i := 0; i <= opts.GridLines && opts.GridLines > 0; i++ {
		y := f.top + float64(i)*(f.bottom-f.top)/float64(opts.GridLines)
		dc.DrawLine(f.left, y, f.right, y)
	}
	for _, n := range series.Orders() {
		dc.DrawLine(f.X(n), f.top, f.X(n), f.bottom)
	}
	if err = dc.Stroke(); err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}

	if opts.Reference {
		dc.SetHexColor(opts.ReferenceColor)
		dc.SetDash(6, 4)
		dc.DrawLine(f.left, f.Y(last.Value), f.right, f.Y(last.Value))
		if err = dc.Stroke(); err != nil {
			return nil, fmt.Errorf("reference: %w", err)
		}
		dc.ClearDash()
	}

	// Failed orders break the line.
	dc.SetHexColor(opts.LineColor)
	dc.SetLineWidth(opts.LineWidth)
	pen := false
	for _, p := range series.Points {
		switch {
		case !p.Succeeded():
			pen = false
		case pen:
			dc.LineTo(f.X(p.N), f.Y(p.Value))
		default:
			dc.MoveTo(f.X(p.N), f.Y(p.Value))
			pen = true
		}
	}
	if err = dc.Stroke(); err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}

	for _, p := range series.Succeeded() {
		dc.DrawCircle(f.X(p.N), f.Y(p.Value), opts.MarkerRadius)
	}
	if err = dc.Fill(); err != nil {
		return nil, fmt.Errorf("markers: %w", err)
	}

	if failures := series.Failures(); len(failures) > 0 {
		dc.SetHexColor(opts.FailureColor)
		r := opts.MarkerRadius
		for _, p := range failures {
			x, y := f.X(p.N), f.bottom
			dc.DrawLine(x-r, y-r, x+r, y+r)
			dc.DrawLine(x-r, y+r, x+r, y-r)
		}
		if err = dc.Stroke(); err != nil {
			return nil, fmt.Errorf("failures: %w", err)
		}
	}

	if opts.FontSize > 0 {
		if err = drawText(dc, f, last, opts); err != nil {
			return nil, fmt.Errorf("text: %w", err)
		}
	}

	convergence.Logger().Debug("chart drawn", "width", opts.Width, "height", opts.Height, "points", series.Len())

	return dc, nil
}

// drawText draws the title, the axis labels and the legend of the last approximation.
func drawText(dc *gg.Context, f frame, last convergence.Point, opts Options) error {

	source, err := goRegular()
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}

	dc.SetFont(source.Face(opts.FontSize))
	dc.SetHexColor(opts.TextColor)

	width := float64(opts.Width)

	if opts.Title != "" {
		dc.SetFont(source.Face(1.25 * opts.FontSize))
		dc.DrawStringAnchored(opts.Title, width/2, 0.45*opts.Margin, 0.5, 0)
		dc.SetFont(source.Face(opts.FontSize))
	}

	if opts.XLabel != "" {
		dc.DrawStringAnchored(opts.XLabel, (f.left+f.right)/2, f.bottom+0.7*opts.Margin, 0.5, 0)
	}

	if opts.YLabel != "" {
		dc.DrawStringAnchored(opts.YLabel, f.left, f.top-0.15*opts.Margin, 0, 0)
	}

	// Legend: a line swatch followed by "N=n: value", top right of the frame.
	legend := fmt.Sprintf("N=%d: %.8f", last.N, last.Value)
	w, h := dc.MeasureString(legend)
	x, y := f.right-w-8, f.top+h+4
	dc.DrawString(legend, x, y)

	dc.SetHexColor(opts.LineColor)
	dc.SetLineWidth(opts.LineWidth)
	dc.DrawLine(x-28, y-h/3, x-6, y-h/3)

	return dc.Stroke()
}

// Render draws the chart of the series and returns the resulting image.
func Render(series convergence.Series, opts Options) (image.Image, error) {
	dc, err := draw(series, opts)
	if err != nil {
		return nil, fmt.Errorf("plot.Render: %w", err)
	}
	defer dc.Close()
	return dc.Image(), nil
}

// SavePNG draws the chart of the series into a PNG file.
func SavePNG(path string, series convergence.Series, opts Options) error {
	dc, err := draw(series, opts)
	if err != nil {
		return fmt.Errorf("plot.SavePNG: %w", err)
	}
	defer dc.Close()

	if err = dc.SavePNG(path); err != nil {
		return fmt.Errorf("plot.SavePNG: %w", err)
	}
	return nil
}

// EncodePNG draws the chart of the series and writes it as PNG on w.
func EncodePNG(w io.Writer, series convergence.Series, opts Options) error {
	dc, err := draw(series, opts)
	if err != nil {
		return fmt.Errorf("plot.EncodePNG: %w", err)
	}
	defer dc.Close()

	if err = dc.EncodePNG(w); err != nil {
		return fmt.Errorf("plot.EncodePNG: %w", err)
	}
	return nil
}
