package config

import (
	"github.com/jmylchreest/tonal/internal/image"
	"github.com/jmylchreest/tonal/internal/security"
	httputil "github.com/jmylchreest/tonal/internal/util/http"
	"github.com/jmylchreest/tonal/pkg/quantize"
	"github.com/jmylchreest/tonal/pkg/score"
	"github.com/jmylchreest/tonal/pkg/theme"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Quantize: quantize.DefaultOptions(),
		Score:    score.DefaultOptions(),
		Image: ImageConfig{
			MaxDimension: image.DefaultMaxDimension,
			Scaler:       string(image.ScalerBiLinear),
			MaxBytes:     security.DefaultMaxBytes,
			Timeout:      httputil.DefaultTimeout,
		},
		Theme: ThemeConfig{
			Variant: string(theme.VariantTonalSpot),
			Mode:    ModeBoth,
		},
		Output: OutputConfig{
			Format:  FormatText,
			Preview: PreviewAuto,
		},
	}
}
