package engine

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// Figure is a grid of subplots with a shared size and, optionally, a
// figure-level legend band. It is created at a fixed grid shape; the
// height may grow afterwards to make room for the legend.
type Figure struct {
	params Params
	rows   int
	cols   int
	width  float64 // inches
	height float64 // inches
	tight  bool
	axes   []*Axes
	legend *LegendBand
}

// NewFigure creates a rows×cols subplot grid at the given size in
// inches, with params applied to every subplot.
func NewFigure(rows, cols int, width, height float64, params Params) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid must be at least 1x1, got %dx%d", rows, cols)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure size must be positive, got %gx%g", width, height)
	}
	f := &Figure{
		params: params,
		rows:   rows,
		cols:   cols,
		width:  width,
		height: height,
		tight:  true,
		axes:   make([]*Axes, rows*cols),
	}
	for i := range f.axes {
		f.axes[i] = newAxes(params)
	}
	return f, nil
}

// Rows returns the subplot grid row count.
func (f *Figure) Rows() int { return f.rows }

// Cols returns the subplot grid column count.
func (f *Figure) Cols() int { return f.cols }

// At returns the subplot at row r, column c (row 0 at the top).
func (f *Figure) At(r, c int) *Axes {
	return f.axes[r*f.cols+c]
}

// AxesAt returns the subplot at the row-major index idx.
func (f *Figure) AxesAt(idx int) *Axes {
	return f.axes[idx]
}

// Size returns the figure dimensions in inches.
func (f *Figure) Size() (width, height float64) {
	return f.width, f.height
}

// SetHeight replaces the figure height in inches.
func (f *Figure) SetHeight(h float64) {
	f.height = h
}

// SetTight toggles reduced padding between subplots.
func (f *Figure) SetTight(tight bool) {
	f.tight = tight
}

// Params returns the configuration the figure was created with.
func (f *Figure) Params() Params {
	return f.params
}

// LegendEntries aggregates the labeled handles of all subplots in
// row-major order.
func (f *Figure) LegendEntries() []LegendEntry {
	var out []LegendEntry
	for _, ax := range f.axes {
		out = append(out, ax.entries...)
	}
	return out
}

// SetLegend attaches a figure-level legend band. The caller is
// responsible for having grown the figure height to fit it.
func (f *Figure) SetLegend(band *LegendBand) {
	f.legend = band
}

// Legend returns the attached legend band, or nil.
func (f *Figure) Legend() *LegendBand {
	return f.legend
}

// drawAll renders the subplot grid and legend band onto the canvas.
func (f *Figure) drawAll(dc draw.Canvas) {
	plotArea := dc
	if f.legend != nil && len(f.legend.Entries) > 0 {
		bandH := vg.Length(float64(f.legend.Rows()) * f.legend.RowHeight * float64(vg.Inch))
		var legendArea draw.Canvas
		if f.legend.Loc == LegendUpperCenter {
			plotArea = draw.Crop(dc, 0, 0, 0, -bandH)
			legendArea = draw.Crop(dc, 0, 0, dc.Max.Y-dc.Min.Y-bandH, 0)
		} else {
			plotArea = draw.Crop(dc, 0, 0, bandH, 0)
			legendArea = draw.Crop(dc, 0, 0, 0, -(dc.Max.Y - dc.Min.Y - bandH))
		}
		f.legend.draw(legendArea, f.params)
	}

	pad := vg.Points(12)
	if f.tight {
		pad = vg.Points(4)
	}
	tiles := draw.Tiles{
		Rows:      f.rows,
		Cols:      f.cols,
		PadX:      pad,
		PadY:      pad,
		PadTop:    pad / 2,
		PadBottom: pad / 2,
		PadLeft:   pad / 2,
		PadRight:  pad / 2,
	}
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			f.At(r, c).p.Draw(tiles.At(plotArea, c, r))
		}
	}
}
