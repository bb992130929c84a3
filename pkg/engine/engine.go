// Package engine is the narrow boundary to the underlying plotting
// engine (gonum.org/v1/plot).
//
// The rest of the module never imports gonum directly: it creates a
// [Figure] with applied [Params], draws series through [Axes], and saves
// through [Figure.Save]. This keeps the pipeline and layout logic
// independent of the engine's API surface.
//
// # Coordinate conventions
//
// Figure dimensions are in inches, font sizes and line widths in points.
// Subplots are addressed row-major with row 0 at the top.
package engine

import (
	"image/color"

	"github.com/zyxkv/PaperPlot/pkg/fonts"
)

// Params is the engine-level rendering configuration derived from a
// style sheet and palette. Applying equal Params to a figure produces
// identical engine state.
type Params struct {
	Typeface   string
	FontSize   float64 // base text, pt
	LabelSize  float64 // axis labels, pt
	TickSize   float64 // tick labels, pt
	LegendSize float64 // legend text, pt
	TitleSize  float64 // per-axes titles, pt
	LineWidth  float64 // series lines, pt
	Grid       bool
	Colors     []color.Color // series color cycle
	Formats    []string      // default save formats
	DPI        int           // default raster resolution
}

// DefaultParams returns a conservative configuration built on the
// engine's bundled Liberation fonts.
func DefaultParams() Params {
	return Params{
		Typeface:   "Liberation",
		FontSize:   9,
		LabelSize:  9,
		TickSize:   8,
		LegendSize: 8,
		TitleSize:  10,
		LineWidth:  1,
		Formats:    []string{"png"},
		DPI:        300,
	}
}

// Equal reports whether two Params describe identical engine state.
func (p Params) Equal(o Params) bool {
	if p.Typeface != o.Typeface ||
		p.FontSize != o.FontSize ||
		p.LabelSize != o.LabelSize ||
		p.TickSize != o.TickSize ||
		p.LegendSize != o.LegendSize ||
		p.TitleSize != o.TitleSize ||
		p.LineWidth != o.LineWidth ||
		p.Grid != o.Grid ||
		p.DPI != o.DPI {
		return false
	}
	if len(p.Colors) != len(o.Colors) || len(p.Formats) != len(o.Formats) {
		return false
	}
	for i := range p.Colors {
		pr, pg, pb, pa := p.Colors[i].RGBA()
		or, og, ob, oa := o.Colors[i].RGBA()
		if pr != or || pg != og || pb != ob || pa != oa {
			return false
		}
	}
	for i := range p.Formats {
		if p.Formats[i] != o.Formats[i] {
			return false
		}
	}
	return true
}

// typeface resolves the configured typeface against the font cache,
// falling back to Liberation when the family was never registered.
// Looking up an unregistered family would fail inside the engine.
func (p Params) typeface() string {
	if p.Typeface == "" || p.Typeface == "Liberation" {
		return "Liberation"
	}
	if fonts.Has(p.Typeface) {
		return p.Typeface
	}
	return "Liberation"
}

// NoLegendPrefix marks a series label as excluded from legends.
// Labels beginning with this prefix produce no legend handle.
const NoLegendPrefix = "_"
