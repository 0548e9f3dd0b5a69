package cli

import (
	"context"
	"encoding/json"
	"fmt"
	goimage "image"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/image"
	"github.com/jmylchreest/tonal/internal/preview"
	"github.com/jmylchreest/tonal/internal/template"
	"github.com/jmylchreest/tonal/pkg/theme"
)

// textFunc renders the text form of a result.
type textFunc func(r *preview.Renderer) string

// write emits v in the configured format to --output or the command's
// stdout. Text output is produced by text.
func (a *app) write(cmd *cobra.Command, out *outputFlags, v any, text textFunc) error {
	return a.withOutput(cmd, out, func(w io.Writer) error {
		return render(w, a.cfg.Output, v, text)
	})
}

// withOutput calls fn with --output or the command's stdout.
func (a *app) withOutput(cmd *cobra.Command, out *outputFlags, fn func(io.Writer) error) (err error) {
	if out.output == "" {
		return fn(cmd.OutOrStdout())
	}

	f, err := os.Create(out.output) // #nosec G304 - Output path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	a.logger.Debug("writing output", "path", out.output)
	return fn(f)
}

// writeTemplate renders th through the configured template.
func (a *app) writeTemplate(cmd *cobra.Command, out *outputFlags, th *theme.Theme) error {
	tmpl, path, err := template.NewLoader("").Load(a.cfg.Output.Template)
	if err != nil {
		return err
	}
	a.logger.Debug("rendering template", "path", path)

	return a.withOutput(cmd, out, func(w io.Writer) error {
		return template.Render(w, tmpl, th)
	})
}

func render(w io.Writer, cfg config.OutputConfig, v any, text textFunc) error {
	switch cfg.Format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	default:
		r := preview.NewRenderer(w, preview.Enabled(cfg.Preview, w))
		_, err := io.WriteString(w, text(r))
		return err
	}
}

// loadImage loads path with the configured image loader.
func (a *app) loadImage(ctx context.Context, path string, insecure bool) (goimage.Image, error) {
	opts := append(a.cfg.Image.LoaderOptions(), image.WithLogger(a.logger.Named("image")))
	if insecure {
		opts = append(opts, image.WithInsecureURLs())
	}

	img, err := image.NewLoader(opts...).Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	b := img.Bounds()
	a.logger.Debug("loaded image", "path", path, "width", b.Dx(), "height", b.Dy())
	return img, nil
}
