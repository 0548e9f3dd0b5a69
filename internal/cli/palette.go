package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/preview"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/hct"
	"github.com/jmylchreest/tonal/pkg/palette"
	"github.com/jmylchreest/tonal/pkg/theme"
)

type paletteOptions struct {
	hue     float64
	chroma  float64
	core    bool
	variant string

	out outputFlags
}

func newPaletteCmd(a *app) *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "palette [hex]",
		Short: "Show the tonal palette of a colour or hue and chroma",
		Long: `Show a tonal palette: one hue and chroma at every tone from 0 to 100.

Examples:
  # The palette of a colour
  tonal palette "#4285f4"

  # A palette from hue and chroma
  tonal palette --hue 270 --chroma 36

  # All six core palettes a theme would use
  tonal palette "#4285f4" --core --variant content`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out.apply(cmd, a)
			if cmd.Flags().Changed("variant") {
				a.cfg.Theme.Variant = opts.variant
			}
			if err := a.validate(); err != nil {
				return err
			}

			hueSet := cmd.Flags().Changed("hue") || cmd.Flags().Changed("chroma")
			switch {
			case len(args) == 1 && hueSet:
				return errors.New("provide either a colour or --hue/--chroma, not both")
			case len(args) == 0 && !hueSet:
				return errors.New("provide a colour or --hue/--chroma")
			case opts.core && len(args) == 0:
				return errors.New("--core requires a seed colour")
			}

			if opts.core {
				seed, err := argb.FromHex(args[0])
				if err != nil {
					return err
				}
				variant, _ := theme.ParseVariant(a.cfg.Theme.Variant)
				core := variant.CorePalette(seed)
				return a.write(cmd, &opts.out, core, func(r *preview.Renderer) string {
					return renderCore(r, core)
				})
			}

			var p palette.TonalPalette
			if len(args) == 1 {
				c, err := argb.FromHex(args[0])
				if err != nil {
					return err
				}
				p = palette.FromColor(c)
			} else {
				if err := hct.Validate(opts.hue, opts.chroma, 50); err != nil {
					return fmt.Errorf("invalid palette: %w", err)
				}
				p = palette.FromHueAndChroma(opts.hue, opts.chroma)
			}

			return a.write(cmd, &opts.out, p, func(r *preview.Renderer) string {
				return r.Palette(p)
			})
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&opts.hue, "hue", 0, "palette hue in degrees")
	fs.Float64Var(&opts.chroma, "chroma", 0, "palette chroma")
	fs.BoolVar(&opts.core, "core", false, "show the six core palettes derived from the colour")
	fs.StringVar(&opts.variant, "variant", "", "core palette variant (tonal, content)")
	opts.out.register(fs)

	return cmd
}

func renderCore(r *preview.Renderer, core *palette.CorePalette) string {
	sections := []struct {
		name string
		p    palette.TonalPalette
	}{
		{"primary", core.Primary},
		{"secondary", core.Secondary},
		{"tertiary", core.Tertiary},
		{"neutral", core.Neutral},
		{"neutralVariant", core.NeutralVariant},
		{"error", core.Error},
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, s.name+"\n"+r.Palette(s.p))
	}
	return strings.Join(parts, "\n")
}
