package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/preview"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/blend"
	"github.com/jmylchreest/tonal/pkg/hct"
)

type harmonized struct {
	Design    argb.Color `json:"design" yaml:"design"`
	Source    argb.Color `json:"source" yaml:"source"`
	Harmonize argb.Color `json:"harmonize" yaml:"harmonize"`
	Amount    float64    `json:"amount" yaml:"amount"`
	HCTHue    argb.Color `json:"hctHue" yaml:"hctHue"`
	CAM16UCS  argb.Color `json:"cam16Ucs" yaml:"cam16Ucs"`
}

func newHarmonizeCmd(a *app) *cobra.Command {
	var (
		amount float64
		out    outputFlags
	)

	cmd := &cobra.Command{
		Use:   "harmonize <design> <source>",
		Short: "Shift a design colour toward a source colour",
		Long: `Harmonize rotates the hue of the design colour toward the source by half the
difference, at most 15 degrees, keeping its chroma and tone. The HCT hue and
CAM16-UCS blends at --amount are shown alongside.

Examples:
  tonal harmonize "#ff0000" "#0000ff"
  tonal harmonize "#ff0000" "#0000ff" --amount 0.25 -f json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out.apply(cmd, a)
			if err := a.validate(); err != nil {
				return err
			}
			if math.IsNaN(amount) {
				return fmt.Errorf("--amount: %w", hct.ErrNotFinite)
			}
			if amount < 0 || amount > 1 {
				return fmt.Errorf("--amount must be between 0 and 1, got %g", amount)
			}

			design, err := argb.FromHex(args[0])
			if err != nil {
				return fmt.Errorf("design: %w", err)
			}
			source, err := argb.FromHex(args[1])
			if err != nil {
				return fmt.Errorf("source: %w", err)
			}

			result := harmonized{
				Design:    design,
				Source:    source,
				Harmonize: blend.Harmonize(design, source),
				Amount:    amount,
				HCTHue:    blend.HCTHue(design, source, amount),
				CAM16UCS:  blend.CAM16UCS(design, source, amount),
			}

			return a.write(cmd, &out, result, func(r *preview.Renderer) string {
				return r.Named([]preview.NamedColor{
					{Name: "design", Color: result.Design},
					{Name: "source", Color: result.Source},
					{Name: "harmonize", Color: result.Harmonize},
					{Name: fmt.Sprintf("hct hue %.2f", amount), Color: result.HCTHue},
					{Name: fmt.Sprintf("cam16-ucs %.2f", amount), Color: result.CAM16UCS},
				})
			})
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0.5, "blend amount from design (0) to source (1)")
	out.register(cmd.Flags())
	return cmd
}
