package engine

import (
	"io"
	"os"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/zyxkv/PaperPlot/pkg/errors"
)

// Formats supported by Save.
const (
	FormatPNG  = "png"
	FormatJPG  = "jpg"
	FormatTIFF = "tiff"
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatEPS  = "eps"
)

// ValidFormats is the set of supported save formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPG:  true,
	FormatTIFF: true,
	FormatPDF:  true,
	FormatSVG:  true,
	FormatEPS:  true,
}

// ValidateFormat checks that a save format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: png, jpg, tiff, pdf, svg, eps)", format)
	}
	return nil
}

// Save renders the figure and writes it to path in the given format.
// Raster formats honor dpi; dpi <= 0 falls back to the figure's
// configured default.
func (f *Figure) Save(path, format string, dpi int) error {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	if format == "jpeg" {
		format = FormatJPG
	}
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if dpi <= 0 {
		dpi = f.params.DPI
	}
	if dpi <= 0 {
		dpi = 300
	}

	w := vg.Length(f.width) * vg.Inch
	h := vg.Length(f.height) * vg.Inch

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "create %s", path)
	}
	defer out.Close()

	var wt io.WriterTo
	switch format {
	case FormatPNG, FormatJPG, FormatTIFF:
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		f.drawAll(draw.New(c))
		switch format {
		case FormatPNG:
			wt = vgimg.PngCanvas{Canvas: c}
		case FormatJPG:
			wt = vgimg.JpegCanvas{Canvas: c}
		case FormatTIFF:
			wt = vgimg.TiffCanvas{Canvas: c}
		}
	case FormatPDF:
		c := vgpdf.New(w, h)
		f.drawAll(draw.New(c))
		wt = c
	case FormatSVG:
		c := vgsvg.New(w, h)
		f.drawAll(draw.New(c))
		wt = c
	case FormatEPS:
		c := vgeps.New(w, h)
		f.drawAll(draw.New(c))
		wt = c
	}

	if _, err := wt.WriteTo(out); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s as %s", path, format)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "close %s", path)
	}
	return nil
}
