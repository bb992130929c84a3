package pipeline

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// newStyledSession returns a session at STYLE_SET with the ieee-modern
// preset applied. Font registration is skipped to avoid scanning the
// host font directories in tests.
func newStyledSession(t *testing.T) *Session {
	t.Helper()
	s, err := Init(Options{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetStyle(StyleOptions{Preset: "ieee-modern", SkipFonts: true}); err != nil {
		t.Fatal(err)
	}
	return s
}

func drawDot(fig *Figure) error {
	return fig.At(0, 0).Line([]float64{0, 1}, []float64{0, 1}, "series")
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageUninitialized, "UNINITIALIZED"},
		{StageInitialized, "INITIALIZED"},
		{StageStyleSet, "STYLE_SET"},
		{StageDrawn, "DRAWN"},
		{StageSaved, "SAVED"},
		{Stage(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

// The legal lifecycle advances through every stage in order.
func TestLegalLifecycle(t *testing.T) {
	s, err := Init(Options{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if s.Stage() != StageInitialized {
		t.Fatalf("after Init stage = %s, want INITIALIZED", s.Stage())
	}

	if err := s.SetStyle(StyleOptions{Style: "ieee", SkipFonts: true}); err != nil {
		t.Fatal(err)
	}
	if s.Stage() != StageStyleSet {
		t.Fatalf("after SetStyle stage = %s, want STYLE_SET", s.Stage())
	}

	if _, err := s.Draw(DrawOptions{PlotFn: drawDot}); err != nil {
		t.Fatal(err)
	}
	if s.Stage() != StageDrawn {
		t.Fatalf("after Draw stage = %s, want DRAWN", s.Stage())
	}

	dir := t.TempDir()
	if _, err := s.Save(dir+"/fig", SaveOptions{Formats: []string{"png"}}); err != nil {
		t.Fatal(err)
	}
	if s.Stage() != StageSaved {
		t.Fatalf("after Save stage = %s, want SAVED", s.Stage())
	}

	s.Destroy()
	if s.Stage() != StageUninitialized {
		t.Fatalf("after Destroy stage = %s, want UNINITIALIZED", s.Stage())
	}
}

// Rejected transitions fail with STAGE_VIOLATION and leave the stage
// unchanged.
func TestRejectedTransitions(t *testing.T) {
	t.Run("draw before style", func(t *testing.T) {
		s, _ := Init(Options{Logger: quietLogger()})
		_, err := s.Draw(DrawOptions{})
		if !errors.Is(err, errors.ErrCodeStageViolation) {
			t.Fatalf("Draw from INITIALIZED = %v, want STAGE_VIOLATION", err)
		}
		if s.Stage() != StageInitialized {
			t.Errorf("stage after rejection = %s, want INITIALIZED unchanged", s.Stage())
		}
	})

	t.Run("grid before style", func(t *testing.T) {
		s, _ := Init(Options{Logger: quietLogger()})
		_, err := s.DrawGrid(Cells(func(ax *Axes, r, c, idx int) error { return nil }), GridOptions{})
		if !errors.Is(err, errors.ErrCodeStageViolation) {
			t.Fatalf("DrawGrid from INITIALIZED = %v, want STAGE_VIOLATION", err)
		}
	})

	t.Run("save before draw", func(t *testing.T) {
		s := newStyledSession(t)
		_, err := s.Save("fig", SaveOptions{Formats: []string{"png"}})
		if !errors.Is(err, errors.ErrCodeStageViolation) {
			t.Fatalf("Save from STYLE_SET = %v, want STAGE_VIOLATION", err)
		}
		if s.Stage() != StageStyleSet {
			t.Errorf("stage after rejection = %s, want STYLE_SET unchanged", s.Stage())
		}
	})

	t.Run("anything after destroy", func(t *testing.T) {
		s := newStyledSession(t)
		s.Destroy()
		if err := s.SetStyle(StyleOptions{Style: "ieee", SkipFonts: true}); !errors.Is(err, errors.ErrCodeStageViolation) {
			t.Fatalf("SetStyle after Destroy = %v, want STAGE_VIOLATION", err)
		}
		if _, err := s.Draw(DrawOptions{}); !errors.Is(err, errors.ErrCodeStageViolation) {
			t.Fatalf("Draw after Destroy = %v, want STAGE_VIOLATION", err)
		}
	})
}

// SetStyle is re-entrant from STYLE_SET, DRAWN, and SAVED.
func TestSetStyleReentrant(t *testing.T) {
	s := newStyledSession(t)

	if err := s.SetStyle(StyleOptions{Style: "gb", SkipFonts: true}); err != nil {
		t.Fatalf("SetStyle from STYLE_SET: %v", err)
	}
	if s.CurrentStyle() != "GB" {
		t.Errorf("CurrentStyle = %q, want GB", s.CurrentStyle())
	}

	if _, err := s.Draw(DrawOptions{PlotFn: drawDot}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetStyle(StyleOptions{Style: "ieee", SkipFonts: true}); err != nil {
		t.Fatalf("SetStyle from DRAWN: %v", err)
	}
	if s.Stage() != StageStyleSet {
		t.Errorf("stage after re-style = %s, want STYLE_SET", s.Stage())
	}
}

// Draw and Save are repeatable: a new draw replaces the figure, save is
// legal again from SAVED.
func TestRedrawAndResave(t *testing.T) {
	s := newStyledSession(t)

	first, err := s.Draw(DrawOptions{PlotFn: drawDot})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Draw(DrawOptions{PlotFn: drawDot})
	if err != nil {
		t.Fatalf("Draw from DRAWN: %v", err)
	}
	if first == second {
		t.Error("second draw should produce a fresh figure")
	}
	if s.Figure() != second {
		t.Error("session should hold the most recent figure")
	}

	dir := t.TempDir()
	if _, err := s.Save(dir+"/a", SaveOptions{Formats: []string{"png"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(dir+"/b", SaveOptions{Formats: []string{"png"}}); err != nil {
		t.Fatalf("Save from SAVED: %v", err)
	}
}

// Destroy followed by a fresh Init cycles the lifecycle and releases
// the held figure.
func TestDestroyInitCycle(t *testing.T) {
	s := newStyledSession(t)
	if _, err := s.Draw(DrawOptions{PlotFn: drawDot}); err != nil {
		t.Fatal(err)
	}
	if s.Figure() == nil {
		t.Fatal("session should hold a figure after Draw")
	}

	s.Destroy()
	if s.Figure() != nil {
		t.Error("Destroy should release the figure reference")
	}
	if s.CurrentStyle() != "" || s.CurrentPreset() != "" {
		t.Error("Destroy should clear style state")
	}

	fresh, err := Init(Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Init after Destroy: %v", err)
	}
	if fresh.Stage() != StageInitialized {
		t.Errorf("fresh session stage = %s, want INITIALIZED", fresh.Stage())
	}
}
