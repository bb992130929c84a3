// Package preset pairs a style sheet with a color palette so both can be
// applied atomically. Preset names are lowercase slugs like "ieee-modern";
// lookup is case-insensitive.
package preset

import (
	"sort"
	"strings"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// Preset names a style sheet and the palette applied with it.
type Preset struct {
	Style  string
	Colors string
}

var presets = map[string]Preset{
	"ieee-modern":    {Style: "IEEE", Colors: "Modern Scientific"},
	"ieee-contrast1": {Style: "IEEE", Colors: "Contrast Set 1"},
	"ieee-okabe":     {Style: "IEEE", Colors: "Okabe-Ito"},
	"gb-modern":      {Style: "GB", Colors: "Modern Scientific"},
	"gb-contrast2":   {Style: "GB", Colors: "Contrast Set 2"},
	"gb-okabe":       {Style: "GB", Colors: "Okabe-Ito"},
	// grayscale-safe presets for printing/photocopy
	"ieee-gray": {Style: "IEEE", Colors: "Grayscale-Safe"},
	"gb-gray":   {Style: "GB", Colors: "Grayscale-Safe"},
}

// List returns all preset names in sorted order.
func List() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a preset name case-insensitively.
// Returns a PRESET_NOT_FOUND error for unknown names.
func Lookup(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodePresetNotFound,
			"preset %q not found, available: %s", name, strings.Join(List(), ", "))
	}
	return p, nil
}
