// Package pipeline sequences configure → draw → save operations on a
// Session, the explicit context object for one figure-producing run.
//
// A Session moves through the stages UNINITIALIZED → INITIALIZED →
// STYLE_SET → DRAWN → SAVED; a single transition table rejects
// out-of-order operations with a STAGE_VIOLATION error. [Init] creates
// the session, [Session.SetStyle] applies a style sheet or preset,
// [Session.Draw] and [Session.DrawGrid] produce a figure, and
// [Session.Save] writes it in one or more formats. [Session.Destroy]
// resets to UNINITIALIZED from any stage.
//
// The deferred variant builds the same calls as a [Chain]:
//
//	sess, err := pipeline.NewChain().
//	    Init(pipeline.Options{}).
//	    Style(pipeline.StyleOptions{Preset: "ieee-modern"}).
//	    Grid(cells, pipeline.GridOptions{Grid: [2]int{2, 2}}).
//	    Save("figure", pipeline.SaveOptions{Formats: []string{"png"}}).
//	    Run()
//
// Sessions are designed for single-goroutine, script-style use and hold
// no locks; concurrent access is unsupported.
package pipeline

import (
	"image/color"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"github.com/zyxkv/PaperPlot/pkg/colorset"
	"github.com/zyxkv/PaperPlot/pkg/engine"
	"github.com/zyxkv/PaperPlot/pkg/errors"
	"github.com/zyxkv/PaperPlot/pkg/fonts"
	"github.com/zyxkv/PaperPlot/pkg/preset"
	"github.com/zyxkv/PaperPlot/pkg/style"
)

// Themes for console output.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeDumb  = "dumb" // no color escape sequences
)

var validThemes = map[string]bool{
	ThemeDark:  true,
	ThemeLight: true,
	ThemeDumb:  true,
}

// Options configures Init.
type Options struct {
	// Debug enables debug-level logging and mirrors log output to a
	// unique per-run file under the system temp directory.
	Debug bool

	// Theme selects console output coloring: dark (default), light,
	// or dumb.
	Theme string

	// Preset, when set, applies the named style+palette preset during
	// Init, leaving the session at STYLE_SET.
	Preset string

	// Logger overrides the session logger. Theme and Debug are ignored
	// for log output when set.
	Logger *log.Logger
}

func (o *Options) validate() error {
	if o.Theme == "" {
		o.Theme = ThemeDark
	}
	if !validThemes[o.Theme] {
		return errors.New(errors.ErrCodeInvalidTheme,
			"theme %q not supported (dark, light, dumb)", o.Theme)
	}
	return nil
}

// Session is the lifecycle holder for one configure→draw→save run.
// It owns the last-produced figure until the next draw replaces it or
// Destroy releases it.
type Session struct {
	stage  Stage
	sheet  *style.Sheet
	params engine.Params
	fig    *engine.Figure

	currentStyle  string
	currentPreset string

	debug    bool
	theme    string
	logger   *log.Logger
	debugLog *os.File
}

// Init creates a session at INITIALIZED. If opts.Preset is set the
// preset is applied immediately, leaving the session at STYLE_SET.
func Init(opts Options) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := &Session{
		stage:  StageUninitialized,
		params: engine.DefaultParams(),
		debug:  opts.Debug,
		theme:  opts.Theme,
		logger: opts.Logger,
	}
	if s.logger == nil {
		if err := s.setupLogger(); err != nil {
			return nil, err
		}
	}

	s.advance(opInit)
	s.logger.Debug("session initialized", "theme", s.theme, "debug", s.debug)

	if opts.Preset != "" {
		if err := s.SetStyle(StyleOptions{Preset: opts.Preset}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// setupLogger builds the session logger according to theme and debug
// settings, mirroring output to a unique per-run file when debugging.
func (s *Session) setupLogger() error {
	level := log.InfoLevel
	if s.debug {
		level = log.DebugLevel
	}

	var w io.Writer = os.Stderr
	if s.debug {
		path := debugLogPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.Create(path); err == nil {
				s.debugLog = f
				w = io.MultiWriter(os.Stderr, f)
			}
		}
	}

	s.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	if s.theme == ThemeDumb {
		s.logger.SetColorProfile(termenv.Ascii)
	}
	return nil
}

// debugLogPath builds a unique per-run log file path.
func debugLogPath() string {
	stamp := time.Now().Format("20060102_150405")
	runID := uuid.NewString()[:8]
	return filepath.Join(os.TempDir(), "paperplot", "logs", stamp+"_"+runID+".log")
}

// Stage returns the session's current lifecycle stage.
func (s *Session) Stage() Stage { return s.stage }

// CurrentStyle returns the name of the last-applied style, or empty.
func (s *Session) CurrentStyle() string { return s.currentStyle }

// CurrentPreset returns the name of the last-applied preset, or empty.
func (s *Session) CurrentPreset() string { return s.currentPreset }

// Figure returns the last-produced figure for read access, or nil.
// The session keeps ownership; the reference is replaced by the next
// draw and released by Destroy.
func (s *Session) Figure() *engine.Figure { return s.fig }

// Params returns the engine configuration currently applied.
func (s *Session) Params() engine.Params { return s.params }

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger { return s.logger }

// StyleOptions configures SetStyle. Exactly one of Style and Preset
// must name a registered entry.
type StyleOptions struct {
	// Style names a style sheet ("IEEE", "GB", or one loaded with
	// style.LoadFile). The active palette is left unchanged.
	Style string

	// Preset names a style+palette pairing; both are applied.
	Preset string

	// SkipFonts disables the font registration side effect.
	SkipFonts bool
}

// SetStyle resolves and applies a style sheet or preset to the engine
// configuration. It is legal from any stage after Init and is
// re-entrant: the style may be changed again before a new draw.
// Re-applying the same style is idempotent.
func (s *Session) SetStyle(opts StyleOptions) error {
	if err := s.require(opSetStyle); err != nil {
		return err
	}
	if (opts.Style == "") == (opts.Preset == "") {
		return errors.New(errors.ErrCodeInvalidInput,
			"exactly one of Style and Preset must be set")
	}

	styleName := opts.Style
	paletteName := ""
	if opts.Preset != "" {
		p, err := preset.Lookup(opts.Preset)
		if err != nil {
			return err
		}
		styleName = p.Style
		paletteName = p.Colors
	}

	sheet, err := style.Lookup(styleName)
	if err != nil {
		return err
	}
	colors := s.params.Colors
	if paletteName != "" {
		colors, err = colorset.Lookup(paletteName)
		if err != nil {
			return err
		}
	}

	if !opts.SkipFonts {
		if err := fonts.Register(); err != nil {
			return err
		}
	}

	s.sheet = sheet
	s.params = paramsFromSheet(sheet, colors)
	s.currentStyle = sheet.Name
	s.currentPreset = opts.Preset
	s.advance(opSetStyle)
	s.logger.Info("style applied", "style", sheet.Name, "preset", opts.Preset)
	return nil
}

// paramsFromSheet maps a style sheet (and active palette) onto engine
// configuration.
func paramsFromSheet(sheet *style.Sheet, colors []color.Color) engine.Params {
	return engine.Params{
		Typeface:   sheet.FontFamily,
		FontSize:   sheet.FontSize,
		LabelSize:  sheet.LabelSize,
		TickSize:   sheet.TickSize,
		LegendSize: sheet.LegendSize,
		TitleSize:  sheet.TitleSize,
		LineWidth:  sheet.LineWidth,
		Grid:       sheet.Grid,
		Colors:     colors,
		Formats:    append([]string(nil), sheet.Formats...),
		DPI:        sheet.DPI,
	}
}

// Destroy resets the session to UNINITIALIZED from any stage, releasing
// the held figure and the debug log file.
func (s *Session) Destroy() {
	s.fig = nil
	s.sheet = nil
	s.params = engine.DefaultParams()
	s.currentStyle = ""
	s.currentPreset = ""
	if s.debugLog != nil {
		s.debugLog.Close()
		s.debugLog = nil
	}
	s.advance(opDestroy)
	s.logger.Debug("session destroyed")
}
