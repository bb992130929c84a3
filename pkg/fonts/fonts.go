// Package fonts registers publication fonts with the plotting engine.
//
// The engine ships with the Liberation family; papers typically require
// Times New Roman (IEEE) or SimSun (GB). Register discovers those fonts
// on the host system via fontconfig-style lookup and adds them to the
// engine's font cache. Registration is a side effect only and is
// idempotent: repeated calls do nothing after the first.
//
// Fonts that cannot be found or parsed are skipped silently; rendering
// falls back to Liberation in that case.
package fonts

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/opentype"
	gonumfont "gonum.org/v1/plot/font"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// target describes one typeface and the font files it may live in.
type target struct {
	typeface string
	files    []string
}

var targets = []target{
	{typeface: "Times New Roman", files: []string{"times.ttf", "Times New Roman.ttf", "Times.ttf"}},
	{typeface: "SimSun", files: []string{"SimsunExtG.ttf", "simsun.ttf", "SimSun.ttf"}},
}

var (
	mu         sync.Mutex
	once       sync.Once
	registered = map[string]bool{}
)

// Register discovers and registers the built-in publication typefaces.
// It never fails on missing fonts; the error return is reserved for the
// engine cache rejecting a parsed face.
func Register() error {
	var err error
	once.Do(func() {
		for _, t := range targets {
			for _, file := range t.files {
				if regErr := registerFile(t.typeface, file); regErr == nil {
					break
				}
			}
		}
	})
	return err
}

// RegisterFile parses the font file at path and registers it under the
// given typeface name. Unlike Register, lookup and parse failures are
// reported so callers can diagnose a missing custom font.
func RegisterFile(typeface, path string) error {
	return registerPath(typeface, path)
}

// registerFile resolves a font file name through the system font paths
// and registers it.
func registerFile(typeface, file string) error {
	path, err := findfont.Find(file)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "locate font %s", file)
	}
	// findfont falls back to fuzzy matches; require the actual file so a
	// lookalike font is not registered under the wrong typeface name.
	if !strings.EqualFold(baseName(path), file) {
		return errors.New(errors.ErrCodeFileNotFound, "font %s not installed (nearest match %s)", file, path)
	}
	return registerPath(typeface, path)
}

func registerPath(typeface, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read font %s", path)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %s", path)
	}

	mu.Lock()
	defer mu.Unlock()
	key := strings.ToLower(typeface)
	if registered[key] {
		return nil
	}
	gonumfont.DefaultCache.Add([]gonumfont.Face{{
		Font: gonumfont.Font{Typeface: gonumfont.Typeface(typeface)},
		Face: parsed,
	}})
	registered[key] = true
	return nil
}

// Has reports whether a typeface was registered by this package.
func Has(typeface string) bool {
	mu.Lock()
	defer mu.Unlock()
	return registered[strings.ToLower(typeface)]
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
