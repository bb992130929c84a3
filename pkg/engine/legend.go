package engine

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LegendLoc is a semantic placement descriptor for the figure-level
// legend band.
type LegendLoc string

const (
	LegendLowerCenter LegendLoc = "lower center"
	LegendUpperCenter LegendLoc = "upper center"
)

// LegendBand is a shared legend laid out in NCol columns inside a
// horizontal band above or below the subplot grid.
type LegendBand struct {
	Entries   []LegendEntry
	Loc       LegendLoc
	NCol      int
	RowHeight float64 // inches per legend row
}

// Rows returns the number of legend rows, ceil(len(Entries)/NCol).
func (b *LegendBand) Rows() int {
	if len(b.Entries) == 0 || b.NCol < 1 {
		return 0
	}
	return (len(b.Entries) + b.NCol - 1) / b.NCol
}

// draw renders the band into the given canvas area. Entries fill
// row-major: entry i lands in column i%NCol, row i/NCol. Each column is
// drawn as one vertical engine legend in its own sub-canvas.
func (b *LegendBand) draw(c draw.Canvas, params Params) {
	if len(b.Entries) == 0 || b.NCol < 1 {
		return
	}
	tf := font.Typeface(params.typeface())
	colW := (c.Max.X - c.Min.X) / vg.Length(b.NCol)

	for col := 0; col < b.NCol; col++ {
		lg := plot.NewLegend()
		lg.TextStyle.Font.Typeface = tf
		lg.TextStyle.Font.Size = vg.Points(params.LegendSize)
		lg.Top = true
		lg.Left = true

		n := 0
		for i := col; i < len(b.Entries); i += b.NCol {
			e := b.Entries[i]
			lg.Add(e.Label, e.Thumb)
			n++
		}
		if n == 0 {
			continue
		}

		sub := c
		sub.Min.X = c.Min.X + vg.Length(col)*colW
		sub.Max.X = sub.Min.X + colW
		lg.Draw(sub)
	}
}
