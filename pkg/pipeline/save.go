package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// SaveOptions configures Save.
type SaveOptions struct {
	// Formats lists the output formats. When empty, the format is
	// taken from the path's extension, or failing that from the style
	// sheet's default format list.
	Formats []string

	// DPI sets the raster resolution; zero uses the style default.
	DPI int
}

// Save writes the session's figure to disk, one file per resolved
// format, named <stem>.<format>. Requires a drawn figure.
//
// Writes are not transactional: if format N fails, files for formats
// 1..N-1 remain on disk and the returned error names the failing
// format. The paths written so far are always returned.
func (s *Session) Save(pathOrStem string, opts SaveOptions) ([]string, error) {
	if err := s.require(opSave); err != nil {
		return nil, err
	}
	if s.fig == nil {
		return nil, errors.New(errors.ErrCodeNoFigure, "no figure to save")
	}

	stem, formats := resolveFormats(pathOrStem, opts.Formats, s.params.Formats)
	if len(formats) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"no formats: path %q has no extension and the style declares no defaults", pathOrStem)
	}

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		out := stem + "." + format
		if err := s.fig.Save(out, format, opts.DPI); err != nil {
			return written, errors.Wrap(errors.ErrCodeRender, err, "save format %s", format)
		}
		written = append(written, out)
	}

	s.advance(opSave)
	s.logger.Info("figure saved", "files", strings.Join(written, ", "))
	return written, nil
}

// resolveFormats splits pathOrStem into a stem and the format list:
// explicit formats win, then an embedded extension, then the style
// defaults. Format names are normalized without leading dots.
func resolveFormats(pathOrStem string, explicit, defaults []string) (string, []string) {
	ext := filepath.Ext(pathOrStem)
	stem := strings.TrimSuffix(pathOrStem, ext)

	if len(explicit) > 0 {
		formats := make([]string, len(explicit))
		for i, f := range explicit {
			formats[i] = strings.ToLower(strings.TrimPrefix(f, "."))
		}
		return stem, formats
	}
	if ext != "" {
		return stem, []string{strings.ToLower(strings.TrimPrefix(ext, "."))}
	}
	return stem, defaults
}
