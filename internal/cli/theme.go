package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/preview"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/theme"
)

type themeOptions struct {
	image   string
	mode    string
	variant string
	custom  []string

	out      outputFlags
	img      imageFlags
	quantize quantizeFlags
}

func newThemeCmd(a *app) *cobra.Command {
	opts := &themeOptions{}

	cmd := &cobra.Command{
		Use:   "theme [hex]",
		Short: "Build a theme from a colour or an image",
		Long: `Build a complete theme from a source colour or from the dominant colour of
an image. The theme holds light and dark schemes, the six core tonal
palettes and any custom colours.

Examples:
  # From a colour
  tonal theme "#4285f4"

  # From an image, dark scheme only, as JSON
  tonal theme -i wallpaper.jpg --mode dark -f json

  # With custom colours; ":noblend" keeps the value unharmonized
  tonal theme "#4285f4" --custom brand=#ff5722 --custom warn=#ffc107:noblend

  # Through a template in the template directory (see "tonal templates")
  tonal theme -i wallpaper.jpg -t kitty -o ~/.config/kitty/theme.conf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.image, "image", "i", "", "image file, directory or https URL to extract the source colour from")
	opts.register(cmd.Flags())

	return cmd
}

func (opts *themeOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&opts.mode, "mode", "", "schemes to emit (light, dark, both)")
	fs.StringVar(&opts.variant, "variant", "", "palette variant (tonal, content)")
	fs.StringArrayVar(&opts.custom, "custom", nil, "custom colour as name=#hex[:noblend] (repeatable)")
	opts.out.register(fs)
	opts.out.registerTemplate(fs)
	opts.img.register(fs)
	opts.quantize.register(fs)
}

func runTheme(cmd *cobra.Command, a *app, opts *themeOptions, args []string) error {
	if (len(args) == 0) == (opts.image == "") {
		return errors.New("provide either a source colour or --image")
	}

	opts.out.apply(cmd, a)
	opts.img.apply(cmd, a)
	opts.quantize.apply(cmd, a)
	if cmd.Flags().Changed("mode") {
		a.cfg.Theme.Mode = opts.mode
	}
	if cmd.Flags().Changed("variant") {
		a.cfg.Theme.Variant = opts.variant
	}
	for _, spec := range opts.custom {
		cc, err := parseCustomColor(spec)
		if err != nil {
			return err
		}
		a.cfg.Theme.CustomColors = mergeCustomColor(a.cfg.Theme.CustomColors, cc)
	}
	if err := a.validate(); err != nil {
		return err
	}

	builder := a.cfg.Builder()
	var th *theme.Theme
	if len(args) == 1 {
		source, err := argb.FromHex(args[0])
		if err != nil {
			return err
		}
		th = builder.Build(source)
	} else {
		img, err := a.loadImage(cmd.Context(), opts.image, opts.img.insecure)
		if err != nil {
			return err
		}
		th, err = builder.BuildFromImage(img)
		if err != nil {
			return err
		}
	}
	a.logger.Debug("built theme", "source", th.Source, "variant", th.Variant, "custom", len(th.CustomColors))

	light, dark := schemeModes(a.cfg.Theme.Mode)
	if !light {
		th.Schemes.Light = nil
	}
	if !dark {
		th.Schemes.Dark = nil
	}

	if a.cfg.Output.Template != "" {
		return a.writeTemplate(cmd, &opts.out, th)
	}
	return a.write(cmd, &opts.out, th, func(r *preview.Renderer) string {
		return r.Theme(th, light, dark)
	})
}

func schemeModes(mode string) (light, dark bool) {
	switch mode {
	case config.ModeLight:
		return true, false
	case config.ModeDark:
		return false, true
	default:
		return true, true
	}
}

// parseCustomColor parses "name=#hex" with an optional ":noblend" suffix.
// Custom colours are harmonized toward the source unless noblend is given.
func parseCustomColor(spec string) (theme.CustomColor, error) {
	name, value, ok := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return theme.CustomColor{}, fmt.Errorf("invalid custom colour %q (expected name=#hex[:noblend])", spec)
	}

	blend := true
	if hex, flag, found := strings.Cut(value, ":"); found {
		if flag != "noblend" {
			return theme.CustomColor{}, fmt.Errorf("invalid custom colour option %q in %q (valid: noblend)", flag, spec)
		}
		value = hex
		blend = false
	}

	c, err := argb.FromHex(value)
	if err != nil {
		return theme.CustomColor{}, fmt.Errorf("custom colour %q: %w", name, err)
	}
	return theme.CustomColor{Name: name, Value: c, Blend: blend}, nil
}

// mergeCustomColor replaces the entry named like cc, or appends it.
func mergeCustomColor(colors []theme.CustomColor, cc theme.CustomColor) []theme.CustomColor {
	for i := range colors {
		if colors[i].Name == cc.Name {
			colors[i] = cc
			return colors
		}
	}
	return append(colors, cc)
}
