package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

func testParams() Params {
	p := DefaultParams()
	p.Grid = true
	return p
}

func TestNewFigureValidation(t *testing.T) {
	tests := []struct {
		rows, cols    int
		width, height float64
		wantErr       bool
	}{
		{1, 1, 3.5, 2.5, false},
		{2, 3, 7.16, 5.0, false},
		{0, 1, 3.5, 2.5, true},
		{1, 0, 3.5, 2.5, true},
		{1, 1, 0, 2.5, true},
		{1, 1, 3.5, -1, true},
	}

	for _, tt := range tests {
		_, err := NewFigure(tt.rows, tt.cols, tt.width, tt.height, testParams())
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFigure(%d,%d,%g,%g) error = %v, wantErr %v",
				tt.rows, tt.cols, tt.width, tt.height, err, tt.wantErr)
		}
	}
}

func TestAxesAddressing(t *testing.T) {
	f, err := NewFigure(2, 3, 7.16, 5, testParams())
	if err != nil {
		t.Fatal(err)
	}
	// Row-major: At(r,c) must equal AxesAt(r*cols+c).
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			if f.At(r, c) != f.AxesAt(r*3+c) {
				t.Errorf("At(%d,%d) != AxesAt(%d)", r, c, r*3+c)
			}
		}
	}
}

func TestLegendEntryCollection(t *testing.T) {
	f, err := NewFigure(1, 2, 7.16, 2.5, testParams())
	if err != nil {
		t.Fatal(err)
	}
	xs := []float64{0, 1, 2}
	ys := []float64{0, 1, 4}

	if err := f.At(0, 0).Line(xs, ys, "measured"); err != nil {
		t.Fatal(err)
	}
	if err := f.At(0, 0).Line(xs, ys, "_hidden"); err != nil {
		t.Fatal(err)
	}
	if err := f.At(0, 1).Scatter(xs, ys, "simulated"); err != nil {
		t.Fatal(err)
	}
	if err := f.At(0, 1).Line(xs, ys, ""); err != nil {
		t.Fatal(err)
	}

	entries := f.LegendEntries()
	if len(entries) != 2 {
		t.Fatalf("collected %d legend entries, want 2 (sentinel and empty labels skipped)", len(entries))
	}
	if entries[0].Label != "measured" || entries[1].Label != "simulated" {
		t.Errorf("entries = [%s %s], want [measured simulated]", entries[0].Label, entries[1].Label)
	}
}

func TestLegendBandRows(t *testing.T) {
	tests := []struct {
		handles int
		ncol    int
		want    int
	}{
		{0, 2, 0},
		{1, 2, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{2, 8, 1}, // ncol greater than handle count -> single row
		{3, 0, 0},
	}

	for _, tt := range tests {
		band := &LegendBand{
			Entries: make([]LegendEntry, tt.handles),
			NCol:    tt.ncol,
		}
		if got := band.Rows(); got != tt.want {
			t.Errorf("Rows with %d handles, ncol %d = %d, want %d", tt.handles, tt.ncol, got, tt.want)
		}
	}
}

func TestParamsEqual(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()
	if !a.Equal(b) {
		t.Error("identical params should be equal")
	}
	b.LineWidth = 2
	if a.Equal(b) {
		t.Error("params with different line width should differ")
	}
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFigure(1, 1, 3.5, 2.5, testParams())
	if err != nil {
		t.Fatal(err)
	}
	if err := f.At(0, 0).Line([]float64{0, 1}, []float64{0, 1}, "series"); err != nil {
		t.Fatal(err)
	}

	for _, format := range []string{"png", "svg", "pdf", "eps"} {
		path := filepath.Join(dir, "fig."+format)
		if err := f.Save(path, format, 150); err != nil {
			t.Fatalf("Save %s: %v", format, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestSaveWithLegendBand(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFigure(1, 2, 7.16, 1.25, testParams())
	if err != nil {
		t.Fatal(err)
	}
	xs := []float64{0, 1, 2}
	for c := 0; c < 2; c++ {
		if err := f.At(0, c).Line(xs, xs, "series"); err != nil {
			t.Fatal(err)
		}
	}
	f.SetLegend(&LegendBand{
		Entries:   f.LegendEntries(),
		Loc:       LegendLowerCenter,
		NCol:      2,
		RowHeight: 0.15,
	})
	f.SetHeight(1.25 + 0.15)

	path := filepath.Join(dir, "legend.png")
	if err := f.Save(path, "png", 150); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestSaveInvalidFormat(t *testing.T) {
	f, err := NewFigure(1, 1, 3.5, 2.5, testParams())
	if err != nil {
		t.Fatal(err)
	}
	err = f.Save(filepath.Join(t.TempDir(), "fig.bmp"), "bmp", 0)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Save with bmp should fail with INVALID_FORMAT, got %v", err)
	}
}
