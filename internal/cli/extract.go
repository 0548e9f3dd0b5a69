package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/preview"
	"github.com/jmylchreest/tonal/pkg/quantize"
)

type extractOptions struct {
	count int

	out      outputFlags
	img      imageFlags
	quantize quantizeFlags
}

func (o *extractOptions) apply(cmd *cobra.Command, a *app) error {
	o.out.apply(cmd, a)
	o.img.apply(cmd, a)
	o.quantize.apply(cmd, a)
	return a.validate()
}

func newSourceCmd(a *app) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "source <image>",
		Short: "Rank the source colour candidates of an image",
		Long: `Quantize an image, score the resulting colours and list the best theme
source candidates, best first. Greyscale images yield the fallback colour.

Examples:
  tonal source wallpaper.jpg
  tonal source -n 1 -f json ~/Pictures/wallpapers/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.apply(cmd, a); err != nil {
				return err
			}
			if opts.count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", opts.count)
			}

			img, err := a.loadImage(cmd.Context(), args[0], opts.img.insecure)
			if err != nil {
				return err
			}
			candidates, err := a.cfg.Builder().Candidates(quantize.PixelsFromImage(img))
			if err != nil {
				return err
			}
			if len(candidates) > opts.count {
				candidates = candidates[:opts.count]
			}
			a.logger.Debug("scored image", "candidates", len(candidates), "best", candidates[0].Color)

			return a.write(cmd, &opts.out, candidates, func(r *preview.Renderer) string {
				return r.Candidates(candidates)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 5, "number of candidates to list")
	opts.out.register(cmd.Flags())
	opts.img.register(cmd.Flags())
	opts.quantize.register(cmd.Flags())

	return cmd
}

func newQuantizeCmd(a *app) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "quantize <image>",
		Short: "Reduce an image to its representative colours",
		Long: `Reduce the pixels of an image to at most --colours representative colours
with their populations, most populous first.

Examples:
  tonal quantize -c 16 wallpaper.png
  tonal quantize -f yaml https://example.com/wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.apply(cmd, a); err != nil {
				return err
			}

			img, err := a.loadImage(cmd.Context(), args[0], opts.img.insecure)
			if err != nil {
				return err
			}
			result, err := quantize.Quantize(quantize.PixelsFromImage(img), a.cfg.Quantize)
			if err != nil {
				return err
			}
			a.logger.Debug("quantized image", "colours", len(result), "pixels", result.Total())

			return a.write(cmd, &opts.out, result, func(r *preview.Renderer) string {
				return r.Colors(result)
			})
		},
	}

	opts.out.register(cmd.Flags())
	opts.img.register(cmd.Flags())
	opts.quantize.register(cmd.Flags())

	return cmd
}
