package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// newDrawnSession returns a session at DRAWN with one populated cell.
func newDrawnSession(t *testing.T) *Session {
	t.Helper()
	s := newStyledSession(t)
	if _, err := s.Draw(DrawOptions{PlotFn: drawDot}); err != nil {
		t.Fatal(err)
	}
	return s
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("%s should not exist", path)
	}
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("%s should exist: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}

func TestSaveExplicitFormats(t *testing.T) {
	s := newDrawnSession(t)
	stem := filepath.Join(t.TempDir(), "figure")

	written, err := s.Save(stem, SaveOptions{Formats: []string{"png", "pdf"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{stem + ".png", stem + ".pdf"}
	if len(written) != len(want) {
		t.Fatalf("written = %v, want %v", written, want)
	}
	for i, p := range want {
		if written[i] != p {
			t.Errorf("written[%d] = %s, want %s", i, written[i], p)
		}
		mustExist(t, p)
	}
	mustNotExist(t, stem) // the bare stem is never an output file
	if s.Stage() != StageSaved {
		t.Errorf("stage = %s, want SAVED", s.Stage())
	}
}

func TestSaveFormatFromExtension(t *testing.T) {
	s := newDrawnSession(t)
	path := filepath.Join(t.TempDir(), "figure.svg")

	written, err := s.Save(path, SaveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 1 || written[0] != path {
		t.Fatalf("written = %v, want [%s]", written, path)
	}
	mustExist(t, path)
}

// Explicit formats override an embedded extension; the extension only
// contributes the stem.
func TestSaveExplicitFormatsWinOverExtension(t *testing.T) {
	s := newDrawnSession(t)
	stem := filepath.Join(t.TempDir(), "figure")

	written, err := s.Save(stem+".svg", SaveOptions{Formats: []string{"PNG", ".eps"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{stem + ".png", stem + ".eps"}
	for i, p := range want {
		if written[i] != p {
			t.Errorf("written[%d] = %s, want %s", i, written[i], p)
		}
		mustExist(t, p)
	}
	mustNotExist(t, stem+".svg")
}

// With neither formats nor an extension, the style sheet's default
// format list applies. The IEEE sheet declares png and pdf.
func TestSaveStyleDefaultFormats(t *testing.T) {
	s := newDrawnSession(t)
	stem := filepath.Join(t.TempDir(), "figure")

	written, err := s.Save(stem, SaveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v, want 2 style-default files", written)
	}
	mustExist(t, stem+".png")
	mustExist(t, stem+".pdf")
}

// A failing format mid-list keeps the files written before it; the
// stage does not advance.
func TestSavePartialFailure(t *testing.T) {
	s := newDrawnSession(t)
	stem := filepath.Join(t.TempDir(), "figure")

	written, err := s.Save(stem, SaveOptions{Formats: []string{"png", "bmp"}})
	if err == nil {
		t.Fatal("unsupported format should fail")
	}
	if !strings.Contains(err.Error(), "bmp") {
		t.Errorf("error should name the failing format: %v", err)
	}
	if len(written) != 1 || written[0] != stem+".png" {
		t.Fatalf("written = %v, want only the png", written)
	}
	mustExist(t, stem+".png")
	mustNotExist(t, stem+".bmp")
	if s.Stage() != StageDrawn {
		t.Errorf("stage = %s, want DRAWN after failed save", s.Stage())
	}

	// A corrected retry from DRAWN succeeds.
	if _, err := s.Save(stem, SaveOptions{Formats: []string{"pdf"}}); err != nil {
		t.Fatal(err)
	}
	if s.Stage() != StageSaved {
		t.Errorf("stage = %s, want SAVED after retry", s.Stage())
	}
}

func TestSaveNoResolvableFormat(t *testing.T) {
	s := newStyledSession(t)
	// A figure drawn against parameters with no default formats.
	if _, err := s.Draw(DrawOptions{PlotFn: drawDot}); err != nil {
		t.Fatal(err)
	}
	s.params.Formats = nil

	_, err := s.Save(filepath.Join(t.TempDir(), "figure"), SaveOptions{})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Fatalf("code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestSaveWithoutFigure(t *testing.T) {
	s := newDrawnSession(t)
	s.fig = nil

	_, err := s.Save(filepath.Join(t.TempDir(), "figure"), SaveOptions{})
	if errors.GetCode(err) != errors.ErrCodeNoFigure {
		t.Fatalf("code = %v, want NO_FIGURE", errors.GetCode(err))
	}
}
