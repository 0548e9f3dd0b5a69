package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/preview"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/cam16"
	"github.com/jmylchreest/tonal/pkg/hct"
)

type hctValues struct {
	Hue       float64 `json:"hue" yaml:"hue"`
	Chroma    float64 `json:"chroma" yaml:"chroma"`
	Tone      float64 `json:"tone" yaml:"tone"`
	MaxChroma float64 `json:"maxChroma" yaml:"maxChroma"`
}

type cam16Values struct {
	J      float64 `json:"j" yaml:"j"`
	Chroma float64 `json:"chroma" yaml:"chroma"`
	Hue    float64 `json:"hue" yaml:"hue"`
	Q      float64 `json:"q" yaml:"q"`
	M      float64 `json:"m" yaml:"m"`
	S      float64 `json:"s" yaml:"s"`
	Jstar  float64 `json:"jstar" yaml:"jstar"`
	Astar  float64 `json:"astar" yaml:"astar"`
	Bstar  float64 `json:"bstar" yaml:"bstar"`
}

type inspection struct {
	Color   argb.Color  `json:"color" yaml:"color"`
	RGB     [3]uint8    `json:"rgb" yaml:"rgb,flow"`
	HCT     hctValues   `json:"hct" yaml:"hct"`
	CAM16   cam16Values `json:"cam16" yaml:"cam16"`
	Lab     argb.Lab    `json:"lab" yaml:"lab"`
	XYZ     argb.XYZ    `json:"xyz" yaml:"xyz"`
	OnWhite float64     `json:"contrastOnWhite" yaml:"contrastOnWhite"`
	OnBlack float64     `json:"contrastOnBlack" yaml:"contrastOnBlack"`
}

func inspectColor(c argb.Color) inspection {
	h := hct.FromARGB(c)
	cam := cam16.FromARGB(c)
	return inspection{
		Color: c,
		RGB:   [3]uint8{c.Red(), c.Green(), c.Blue()},
		HCT: hctValues{
			Hue:       h.Hue(),
			Chroma:    h.Chroma(),
			Tone:      h.Tone(),
			MaxChroma: h.MaximumChroma(),
		},
		CAM16: cam16Values{
			J: cam.J, Chroma: cam.Chroma, Hue: cam.Hue,
			Q: cam.Q, M: cam.M, S: cam.S,
			Jstar: cam.Jstar, Astar: cam.Astar, Bstar: cam.Bstar,
		},
		Lab:     c.Lab(),
		XYZ:     c.XYZ(),
		OnWhite: preview.ContrastRatio(c, 0xffffffff),
		OnBlack: preview.ContrastRatio(c, 0xff000000),
	}
}

func newInspectCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "inspect <hex>...",
		Short: "Show colours in every supported colour space",
		Long: `Show each colour as hex, RGB, HCT, CAM16, CAM16-UCS, L*a*b* and XYZ, along
with its WCAG contrast against white and black.

Examples:
  tonal inspect "#4285f4" "#ea4335"
  tonal inspect -f json 4285f4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out.apply(cmd, a)
			if err := a.validate(); err != nil {
				return err
			}

			colors := make([]argb.Color, 0, len(args))
			results := make([]inspection, 0, len(args))
			for _, arg := range args {
				c, err := argb.FromHex(arg)
				if err != nil {
					return err
				}
				colors = append(colors, c)
				results = append(results, inspectColor(c))
			}

			return a.write(cmd, &out, results, func(r *preview.Renderer) string {
				parts := make([]string, 0, len(colors))
				for _, c := range colors {
					parts = append(parts, r.Inspect(c))
				}
				return strings.Join(parts, "\n")
			})
		},
	}

	out.register(cmd.Flags())
	return cmd
}
