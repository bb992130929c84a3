package pipeline

import (
	"github.com/zyxkv/PaperPlot/pkg/engine"
)

// CellFunc draws one grid cell. r and c are the cell's row and column,
// idx its row-major index.
type CellFunc func(ax *Axes, r, c, idx int) error

// CellDataFunc is the data-carrying cell callback form: the grid's
// Data value is passed through unchanged to every cell.
type CellDataFunc func(ax *Axes, r, c, idx int, data any) error

// CellRenderer is a cell callback tagged with its call shape. The
// caller declares the shape once via Cells or CellsWithData; every cell
// of a grid is invoked through the same form.
type CellRenderer struct {
	plain    CellFunc
	withData CellDataFunc
}

// Cells wraps the plain four-argument cell callback.
func Cells(fn CellFunc) CellRenderer {
	return CellRenderer{plain: fn}
}

// CellsWithData wraps the data-carrying cell callback.
func CellsWithData(fn CellDataFunc) CellRenderer {
	return CellRenderer{withData: fn}
}

func (cr CellRenderer) invoke(ax *Axes, r, c, idx int, data any) error {
	if cr.withData != nil {
		return cr.withData(ax, r, c, idx, data)
	}
	if cr.plain != nil {
		return cr.plain(ax, r, c, idx)
	}
	return nil
}

// LegendConfig configures the shared figure-level legend of a grid.
type LegendConfig struct {
	// Loc is the semantic placement; empty means lower center.
	Loc engine.LegendLoc

	// NCol is the legend column count; zero derives it from the grid
	// column count.
	NCol int

	// RowHeight is the vertical space in inches reserved per legend
	// row; zero uses the style sheet's value.
	RowHeight float64
}

// GridOptions configures DrawGrid.
type GridOptions struct {
	// Grid is the (rows, cols) subplot shape; zero means 1x1.
	Grid [2]int

	// ColSpan selects the paper column width class: 1 (single column)
	// or 2 (double column). Other values silently fall back to single
	// column width.
	ColSpan int

	// Legend, when set, draws one shared legend from the handles
	// collected across all cells and reserves figure height for it.
	Legend *LegendConfig

	// Titles are assigned to cells by row-major index. Extra titles
	// beyond the cell count are silently ignored, as are cells beyond
	// the title count.
	Titles []string

	// Data is passed through unchanged to CellsWithData callbacks.
	Data any

	// FigSize overrides the derived (width, height) in inches.
	FigSize [2]float64

	// NoTight disables layout tightening.
	NoTight bool
}

// DrawGrid creates a subplot grid, invokes the cell renderer for every
// cell in row-major order, and optionally places a shared legend below
// or above the grid, expanding the figure height so the legend does not
// overlap the axes. The figure is stored as the session's figure
// exactly like Draw.
//
// A cell callback error propagates immediately; the partially drawn
// figure is kept and the stage still advances to DRAWN.
func (s *Session) DrawGrid(cells CellRenderer, opts GridOptions) (*Figure, error) {
	if err := s.require(opDrawGrid); err != nil {
		return nil, err
	}

	rows, cols := gridShape(opts.Grid)
	width, height := s.defaultFigSize(rows, cols, opts.ColSpan, opts.FigSize)
	fig, err := s.newFigure(rows, cols, width, height, !opts.NoTight)
	if err != nil {
		return nil, err
	}

	cellErr := s.populateGrid(fig, cells, opts)
	if cellErr == nil {
		s.applyLegend(fig, opts.Legend, cols)
	}

	s.fig = fig
	s.advance(opDrawGrid)
	if cellErr != nil {
		s.logger.Warn("cell callback failed", "err", cellErr)
		return fig, cellErr
	}
	s.logger.Info("grid figure drawn", "rows", rows, "cols", cols, "legend", opts.Legend != nil)
	return fig, nil
}

// populateGrid invokes the cell renderer per cell and assigns titles.
func (s *Session) populateGrid(fig *Figure, cells CellRenderer, opts GridOptions) error {
	idx := 0
	for r := 0; r < fig.Rows(); r++ {
		for c := 0; c < fig.Cols(); c++ {
			ax := fig.At(r, c)
			if err := cells.invoke(ax, r, c, idx, opts.Data); err != nil {
				return err
			}
			if idx < len(opts.Titles) {
				ax.SetTitle(opts.Titles[idx])
			}
			idx++
		}
	}
	return nil
}

// applyLegend aggregates labeled handles and, when a legend is
// requested and handles exist, attaches the shared legend band and
// grows the figure height by one row-height per estimated legend row.
func (s *Session) applyLegend(fig *Figure, cfg *LegendConfig, gridCols int) {
	if cfg == nil {
		return
	}
	entries := fig.LegendEntries()
	if len(entries) == 0 {
		return
	}

	ncol := cfg.NCol
	if ncol < 1 {
		ncol = gridCols
	}
	rowHeight := cfg.RowHeight
	if rowHeight <= 0 {
		rowHeight = s.sheet.LegendRowHeight
	}
	loc := cfg.Loc
	if loc == "" {
		loc = engine.LegendLowerCenter
	}

	band := &engine.LegendBand{
		Entries:   entries,
		Loc:       loc,
		NCol:      ncol,
		RowHeight: rowHeight,
	}
	_, height := fig.Size()
	fig.SetHeight(height + float64(band.Rows())*rowHeight)
	fig.SetLegend(band)
	s.logger.Debug("legend reserved",
		"handles", len(entries), "ncol", ncol, "rows", band.Rows())
}
