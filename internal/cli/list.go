package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zyxkv/PaperPlot/pkg/colorset"
	"github.com/zyxkv/PaperPlot/pkg/preset"
	"github.com/zyxkv/PaperPlot/pkg/style"
)

// newStylesCmd creates the styles command listing the bundled
// publication style sheets and their key dimensions.
func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the bundled publication style sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Style sheets"))
			printNewline()
			for _, name := range style.List() {
				sheet, err := style.Lookup(name)
				if err != nil {
					return err
				}
				printKeyValue(sheet.Name, fmt.Sprintf(
					"%s, %gpt, single %gin / double %gin, %d dpi, %s",
					sheet.FontFamily, sheet.FontSize,
					sheet.ColWidthSingle, sheet.ColWidthDouble,
					sheet.DPI, strings.Join(sheet.Formats, "+")))
			}
			return nil
		},
	}
}

// newPalettesCmd creates the palettes command. With --check-gray each
// palette is also tested for grayscale discriminability, which matters
// when figures may be printed or photocopied in black and white.
func newPalettesCmd() *cobra.Command {
	var checkGray bool
	var minDelta float64

	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List color sets with terminal swatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Color sets"))
			printNewline()
			for _, name := range colorset.List() {
				hexes, err := colorset.Hex(name)
				if err != nil {
					return err
				}
				printSwatch(name, hexes)
				if checkGray {
					ok, err := colorset.GrayscaleDiscriminable(name, minDelta)
					if err != nil {
						return err
					}
					if ok {
						printDetail("grayscale-safe at delta %g", minDelta)
					} else {
						printWarning("%s is not grayscale-safe at delta %g", name, minDelta)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkGray, "check-gray", false, "check each palette for grayscale discriminability")
	cmd.Flags().Float64Var(&minDelta, "min-delta", colorset.DefaultMinDelta, "minimum luma gap between adjacent grays")

	return cmd
}

// newPresetsCmd creates the presets command listing the bundled
// style+palette combinations accepted by render --preset.
func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List style+palette preset combinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Presets"))
			printNewline()
			for _, name := range preset.List() {
				p, err := preset.Lookup(name)
				if err != nil {
					return err
				}
				printKeyValue(name, fmt.Sprintf("%s %s %s", p.Style, iconArrow, p.Colors))
			}
			return nil
		},
	}
}
