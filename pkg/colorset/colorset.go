// Package colorset provides named color palettes for plotted series.
//
// Each palette is an ordered set of colors applied as the series color
// cycle. Palettes are curated for publication use: high mutual contrast,
// color-blind safety (Okabe-Ito), or grayscale printability
// (Grayscale-Safe). Lookup is case-insensitive.
package colorset

import (
	"image/color"
	"sort"
	"strings"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// palettes maps palette names to ordered hex color lists.
var palettes = map[string][]string{
	"Contrast Set 1": {
		"#D55E00", "#0072B2", "#009E73", "#F0E442",
		"#CC79A7", "#56B4E9", "#E69F00", "#F4A582",
	},
	"Contrast Set 2": {
		"#A6761D", "#666666", "#E7298A", "#66A61E",
		"#E6AB02", "#A6CEE3", "#1F78B4", "#B2DF8A",
	},
	"Muted Yet Bold": {
		"#8B3A3A", "#2E8B57", "#4682B4", "#CD5C5C",
		"#5F9EA0", "#8A2BE2", "#FF6347", "#FFD700",
	},
	"Refined Contrast": {
		"#8B4513", "#00CED1", "#808000", "#8FBC8F",
		"#2F4F4F", "#FF69B4", "#DAA520", "#4682B4",
	},
	"Modern Scientific": {
		"#E41A1C", "#377EB8", "#4DAF4A", "#984EA3",
		"#FF7F00", "#FFFF33", "#A65628", "#F781BF",
	},
	"Extended Elegance": {
		"#B22222", "#6A5ACD", "#2E8B57", "#FF8C00",
		"#20B2AA", "#9370DB", "#8FBC8F", "#A52A2A",
	},
	"Pastel High Contrast": {
		"#F4A582", "#92C5DE", "#B2DF8A", "#FC9272",
		"#FFD92F", "#9E0142", "#D53E4F", "#F46D43",
	},
	"Softened Bold Colors": {
		"#F28E2B", "#4E79A7", "#E15759", "#76B7B2",
		"#59A14F", "#EDC948", "#B07AA1", "#FF9DA7",
	},
	// Color-blind friendly (Okabe-Ito)
	// Ref: https://jfly.uni-koeln.de/color/
	"Okabe-Ito": {
		"#E69F00", "#56B4E9", "#009E73", "#F0E442",
		"#0072B2", "#D55E00", "#CC79A7", "#000000",
	},
	// Brewer qualitative (Set2/Paired-like) selections
	"Brewer-Qual-Soft": {
		"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3",
		"#A6D854", "#FFD92F", "#E5C494", "#B3B3B3",
	},
	// Luminance steps ~0,10,25,40,55,70,85,95% so adjacent colors stay
	// apart when printed without color.
	"Grayscale-Safe": {
		"#000000", "#1A1A1A", "#404040", "#666666",
		"#8C8C8C", "#B3B3B3", "#D9D9D9", "#F2F2F2",
	},
}

// List returns all palette names in sorted order.
func List() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// canonical resolves a case-insensitive name to the registered key.
func canonical(name string) (string, bool) {
	lower := strings.ToLower(name)
	for key := range palettes {
		if strings.ToLower(key) == lower {
			return key, true
		}
	}
	return "", false
}

// Hex returns the palette's hex color strings.
// Returns a COLORSET_NOT_FOUND error for unknown names.
func Hex(name string) ([]string, error) {
	key, ok := canonical(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeColorSetNotFound,
			"color set %q not found, available: %s", name, strings.Join(List(), ", "))
	}
	out := make([]string, len(palettes[key]))
	copy(out, palettes[key])
	return out, nil
}

// Lookup returns the palette as ordered colors.
// Returns a COLORSET_NOT_FOUND error for unknown names.
func Lookup(name string) ([]color.Color, error) {
	hexes, err := Hex(name)
	if err != nil {
		return nil, err
	}
	out := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ParseHex parses a "#RRGGBB" hex string into an opaque color.
func ParseHex(h string) (color.Color, error) {
	s := strings.TrimPrefix(h, "#")
	if len(s) != 6 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "malformed hex color %q", h)
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := hexByte(s[2*i], s[2*i+1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed hex color %q", h)
		}
		rgb[i] = v
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}, nil
}

func hexByte(hi, lo byte) (uint8, error) {
	h, err := hexNibble(hi)
	if err != nil {
		return 0, err
	}
	l, err := hexNibble(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}

func hexNibble(b byte) (uint8, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid hex digit %q", string(b))
}

// DefaultMinDelta is the minimum luminance gap (0-100 scale) between
// adjacent palette colors for GrayscaleDiscriminable.
const DefaultMinDelta = 8.0

// GrayscaleDiscriminable reports whether the palette's colors remain
// distinguishable when rendered without color. Colors are converted to
// Rec. 709 luma and adjacent sorted values must differ by at least
// minDelta on a 0-100 scale.
func GrayscaleDiscriminable(name string, minDelta float64) (bool, error) {
	hexes, err := Hex(name)
	if err != nil {
		return false, err
	}
	lumas := make([]float64, len(hexes))
	for i, h := range hexes {
		lumas[i] = lumaHex(h)
	}
	sort.Float64s(lumas)
	for i := 1; i < len(lumas); i++ {
		if lumas[i]-lumas[i-1] < minDelta {
			return false, nil
		}
	}
	return true, nil
}

// lumaHex converts "#RRGGBB" to perceived luminance on a 0-100 scale
// using the Rec. 709 luma approximation.
func lumaHex(h string) float64 {
	c, err := ParseHex(h)
	if err != nil {
		return 0
	}
	n := c.(color.NRGBA)
	r := float64(n.R) / 255.0
	g := float64(n.G) / 255.0
	b := float64(n.B) / 255.0
	return (0.2126*r + 0.7152*g + 0.0722*b) * 100.0
}
