// Package style provides named style sheets for publication figures.
//
// A style sheet is a set of static rendering parameters (font family and
// sizes, line widths, grid toggle, paper column widths, default save
// formats). The built-in sheets "ieee" and "gb" are embedded as TOML and
// match IEEE transactions and Chinese national standard (GB) layout
// conventions. Additional sheets can be loaded from TOML files with
// [LoadFile].
//
// Lookup is case-insensitive, so "IEEE", "ieee" and "Ieee" resolve to the
// same sheet.
package style

import (
	"embed"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

//go:embed sheets/*.toml
var sheetFS embed.FS

// Sheet holds the static rendering parameters of one style.
// Font sizes and line widths are in points, figure dimensions in inches.
type Sheet struct {
	Name       string  `toml:"name"`
	FontFamily string  `toml:"font-family"`
	FontSize   float64 `toml:"font-size"`
	LabelSize  float64 `toml:"label-size"`
	TickSize   float64 `toml:"tick-size"`
	LegendSize float64 `toml:"legend-size"`
	TitleSize  float64 `toml:"title-size"`
	LineWidth  float64 `toml:"line-width"`
	Grid       bool    `toml:"grid"`

	// Paper column width classes (col-span 1 and 2).
	ColWidthSingle float64 `toml:"col-width-single"`
	ColWidthDouble float64 `toml:"col-width-double"`

	// BaseHeight is the per-row height heuristic for grid figures.
	BaseHeight float64 `toml:"base-height"`

	// LegendRowHeight is the vertical space reserved per legend row.
	LegendRowHeight float64 `toml:"legend-row-height"`

	// Formats are the default save formats when none are requested.
	Formats []string `toml:"formats"`
	DPI     int      `toml:"dpi"`
}

// ColWidth returns the figure width for a paper column span.
// Spans other than 2 fall back to the single-column width.
func (s *Sheet) ColWidth(span int) float64 {
	if span == 2 {
		return s.ColWidthDouble
	}
	return s.ColWidthSingle
}

var (
	registryOnce sync.Once
	registry     map[string]*Sheet
)

// loadRegistry decodes the embedded sheets exactly once.
func loadRegistry() {
	registryOnce.Do(func() {
		registry = make(map[string]*Sheet)
		entries, err := sheetFS.ReadDir("sheets")
		if err != nil {
			return
		}
		for _, e := range entries {
			data, err := sheetFS.ReadFile("sheets/" + e.Name())
			if err != nil {
				continue
			}
			sheet, err := decode(data)
			if err != nil {
				continue
			}
			registry[strings.ToLower(sheet.Name)] = sheet
		}
	})
}

func decode(data []byte) (*Sheet, error) {
	var s Sheet
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSheet, err, "decode style sheet")
	}
	if s.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidSheet, "style sheet missing name")
	}
	return &s, nil
}

// List returns the registered style names in sorted order.
func List() []string {
	loadRegistry()
	names := make([]string, 0, len(registry))
	for _, s := range registry {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a style name case-insensitively.
// Returns a STYLE_NOT_FOUND error for unknown names. The returned sheet
// is a copy; callers may adjust it without affecting the registry.
func Lookup(name string) (*Sheet, error) {
	loadRegistry()
	s, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeStyleNotFound,
			"style %q not found, available: %s", name, strings.Join(List(), ", "))
	}
	out := *s
	out.Formats = append([]string(nil), s.Formats...)
	return &out, nil
}

// LoadFile decodes a TOML style sheet from disk and registers it under
// its declared name, replacing any existing sheet with that name.
func LoadFile(path string) (*Sheet, error) {
	loadRegistry()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read style sheet %s", path)
	}
	sheet, err := decode(data)
	if err != nil {
		return nil, err
	}
	registry[strings.ToLower(sheet.Name)] = sheet
	return sheet, nil
}
