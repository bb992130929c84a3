package engine

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Axes is one subplot of a Figure. It wraps a single engine plot and
// records the labeled legend handles produced on it.
type Axes struct {
	p       *plot.Plot
	params  Params
	cycle   int
	entries []LegendEntry
}

// LegendEntry is one labeled handle collected for legend drawing.
type LegendEntry struct {
	Label string
	Thumb plot.Thumbnailer
}

func newAxes(params Params) *Axes {
	p := plot.New()
	tf := font.Typeface(params.typeface())

	p.Title.TextStyle.Font.Typeface = tf
	p.Title.TextStyle.Font.Size = vg.Points(params.TitleSize)
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Typeface = tf
		ax.Label.TextStyle.Font.Size = vg.Points(params.LabelSize)
		ax.Tick.Label.Font.Typeface = tf
		ax.Tick.Label.Font.Size = vg.Points(params.TickSize)
	}
	p.Legend.TextStyle.Font.Typeface = tf
	p.Legend.TextStyle.Font.Size = vg.Points(params.LegendSize)

	if params.Grid {
		p.Add(plotter.NewGrid())
	}
	return &Axes{p: p, params: params}
}

// Plot exposes the underlying engine plot for arbitrary drawing.
// Handles added directly to it bypass legend collection; use
// AddLegendEntry to include them.
func (a *Axes) Plot() *plot.Plot {
	return a.p
}

// SetTitle sets the subplot title.
func (a *Axes) SetTitle(title string) {
	a.p.Title.Text = title
}

// Title returns the subplot title.
func (a *Axes) Title() string {
	return a.p.Title.Text
}

// SetXLabel sets the x axis label.
func (a *Axes) SetXLabel(label string) {
	a.p.X.Label.Text = label
}

// SetYLabel sets the y axis label.
func (a *Axes) SetYLabel(label string) {
	a.p.Y.Label.Text = label
}

// Line plots ys against xs as a line in the next cycle color.
// A non-empty label produces a legend handle unless it carries the
// NoLegendPrefix sentinel.
func (a *Axes) Line(xs, ys []float64, label string) error {
	ln, err := plotter.NewLine(xyPoints(xs, ys))
	if err != nil {
		return err
	}
	ln.LineStyle.Width = vg.Points(a.params.LineWidth)
	ln.LineStyle.Color = a.nextColor()
	a.p.Add(ln)
	a.AddLegendEntry(label, ln)
	return nil
}

// Scatter plots ys against xs as points in the next cycle color.
func (a *Axes) Scatter(xs, ys []float64, label string) error {
	sc, err := plotter.NewScatter(xyPoints(xs, ys))
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = a.nextColor()
	sc.GlyphStyle.Radius = vg.Points(2)
	a.p.Add(sc)
	a.AddLegendEntry(label, sc)
	return nil
}

// AddLegendEntry records a labeled handle for legend aggregation.
// Empty labels and labels with the NoLegendPrefix sentinel are dropped.
func (a *Axes) AddLegendEntry(label string, thumb plot.Thumbnailer) {
	if label == "" || strings.HasPrefix(label, NoLegendPrefix) {
		return
	}
	a.entries = append(a.entries, LegendEntry{Label: label, Thumb: thumb})
}

// LegendEntries returns the handles collected on this subplot.
func (a *Axes) LegendEntries() []LegendEntry {
	return a.entries
}

// nextColor advances the series color cycle. With no palette applied the
// engine's own defaults are kept.
func (a *Axes) nextColor() color.Color {
	if len(a.params.Colors) == 0 {
		return color.Black
	}
	c := a.params.Colors[a.cycle%len(a.params.Colors)]
	a.cycle++
	return c
}

func xyPoints(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
