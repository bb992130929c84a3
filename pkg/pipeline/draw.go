package pipeline

import (
	"github.com/zyxkv/PaperPlot/pkg/engine"
)

// Figure is the engine figure type, re-exported so callbacks can be
// written against the pipeline package alone.
type Figure = engine.Figure

// Axes is the engine subplot type, re-exported for cell callbacks.
type Axes = engine.Axes

// DrawOptions configures Draw.
type DrawOptions struct {
	// PlotFn draws onto the new figure. A nil PlotFn leaves the
	// subplots empty.
	PlotFn func(fig *Figure) error

	// Subplots is the (rows, cols) grid shape; zero means 1x1.
	Subplots [2]int

	// FigSize is the (width, height) in inches. Zero values fall back
	// to the style-derived default.
	FigSize [2]float64

	// NoTight disables layout tightening.
	NoTight bool
}

// Draw creates a new figure of the given subplot shape, invokes PlotFn
// on it if provided, and stores it as the session's figure, replacing
// any previous one. Requires a style to have been set at least once.
//
// A PlotFn error propagates to the caller, but the partially drawn
// figure is kept and the stage still advances to DRAWN; there is no
// rollback.
func (s *Session) Draw(opts DrawOptions) (*Figure, error) {
	if err := s.require(opDraw); err != nil {
		return nil, err
	}

	rows, cols := gridShape(opts.Subplots)
	width, height := s.defaultFigSize(rows, cols, 1, opts.FigSize)
	fig, err := s.newFigure(rows, cols, width, height, !opts.NoTight)
	if err != nil {
		return nil, err
	}

	var plotErr error
	if opts.PlotFn != nil {
		plotErr = opts.PlotFn(fig)
	}

	s.fig = fig
	s.advance(opDraw)
	if plotErr != nil {
		s.logger.Warn("plot callback failed", "err", plotErr)
		return fig, plotErr
	}
	s.logger.Info("figure drawn", "rows", rows, "cols", cols)
	return fig, nil
}

// gridShape normalizes a (rows, cols) pair, treating zeros as 1.
func gridShape(g [2]int) (rows, cols int) {
	rows, cols = g[0], g[1]
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// newFigure creates an engine figure with the session's applied params.
func (s *Session) newFigure(rows, cols int, width, height float64, tight bool) (*Figure, error) {
	fig, err := engine.NewFigure(rows, cols, width, height, s.params)
	if err != nil {
		return nil, err
	}
	fig.SetTight(tight)
	return fig, nil
}

// defaultFigSize derives the figure size from the active style sheet:
// width from the paper column span, height from the row count scaled by
// the per-cell aspect heuristic. Explicit FigSize values win per axis.
func (s *Session) defaultFigSize(rows, cols, colSpan int, explicit [2]float64) (width, height float64) {
	width, height = explicit[0], explicit[1]
	if width > 0 && height > 0 {
		return width, height
	}
	sheet := s.sheet
	if width <= 0 {
		width = sheet.ColWidth(colSpan)
	}
	if height <= 0 {
		height = float64(rows) / float64(cols) * sheet.BaseHeight
	}
	return width, height
}
