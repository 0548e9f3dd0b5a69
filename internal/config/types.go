package config

import (
	"fmt"
	"time"

	"github.com/jmylchreest/tonal/internal/image"
	"github.com/jmylchreest/tonal/pkg/quantize"
	"github.com/jmylchreest/tonal/pkg/score"
	"github.com/jmylchreest/tonal/pkg/theme"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Preview modes.
const (
	PreviewAuto   = "auto"
	PreviewAlways = "always"
	PreviewNever  = "never"
)

// Scheme modes.
const (
	ModeLight = "light"
	ModeDark  = "dark"
	ModeBoth  = "both"
)

// Config is the complete tonal configuration.
type Config struct {
	Quantize quantize.Options `yaml:"quantize"`
	Score    score.Options    `yaml:"score"`
	Image    ImageConfig      `yaml:"image"`
	Theme    ThemeConfig      `yaml:"theme"`
	Output   OutputConfig     `yaml:"output"`
}

// ImageConfig controls how source images are loaded.
type ImageConfig struct {
	// MaxDimension is the longest edge after downscaling; 0 disables it.
	MaxDimension int           `yaml:"max_dimension"`
	Scaler       string        `yaml:"scaler"`
	MaxBytes     int64         `yaml:"max_bytes"`
	Timeout      time.Duration `yaml:"timeout"`
	Cache        bool          `yaml:"cache"`
	CacheDir     string        `yaml:"cache_dir"`
}

// ThemeConfig controls theme construction.
type ThemeConfig struct {
	Variant      string              `yaml:"variant"`
	Mode         string              `yaml:"mode"`
	CustomColors []theme.CustomColor `yaml:"custom_colors,omitempty"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Preview string `yaml:"preview"`
	// Template renders themes through a text template instead of Format.
	// It is a path or the name of a file in the user template directory.
	Template string `yaml:"template,omitempty"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Quantize.Validate(); err != nil {
		return fmt.Errorf("quantize: %w", err)
	}
	if err := c.Score.Validate(); err != nil {
		return fmt.Errorf("score: %w", err)
	}

	if c.Image.MaxDimension < 0 {
		return fmt.Errorf("image.max_dimension must be at least 0, got %d", c.Image.MaxDimension)
	}
	if c.Image.MaxBytes < 0 {
		return fmt.Errorf("image.max_bytes must be at least 0, got %d", c.Image.MaxBytes)
	}
	if c.Image.Timeout < 0 {
		return fmt.Errorf("image.timeout must not be negative, got %s", c.Image.Timeout)
	}
	if _, err := image.ParseScaler(c.Image.Scaler); err != nil {
		return fmt.Errorf("image.scaler: %w", err)
	}

	if _, err := theme.ParseVariant(c.Theme.Variant); err != nil {
		return fmt.Errorf("theme.variant: %w", err)
	}
	switch c.Theme.Mode {
	case ModeLight, ModeDark, ModeBoth:
	default:
		return fmt.Errorf("invalid theme.mode: %q (valid: %s, %s, %s)", c.Theme.Mode, ModeLight, ModeDark, ModeBoth)
	}

	seen := make(map[string]bool, len(c.Theme.CustomColors))
	for i, cc := range c.Theme.CustomColors {
		if cc.Name == "" {
			return fmt.Errorf("theme.custom_colors[%d]: name is required", i)
		}
		if seen[cc.Name] {
			return fmt.Errorf("theme.custom_colors[%d]: duplicate name %q", i, cc.Name)
		}
		seen[cc.Name] = true
	}

	switch c.Output.Format {
	case FormatJSON, FormatYAML, FormatText:
	default:
		return fmt.Errorf("invalid output.format: %q (valid: %s, %s, %s)", c.Output.Format, FormatJSON, FormatYAML, FormatText)
	}
	switch c.Output.Preview {
	case PreviewAuto, PreviewAlways, PreviewNever:
	default:
		return fmt.Errorf("invalid output.preview: %q (valid: %s, %s, %s)", c.Output.Preview, PreviewAuto, PreviewAlways, PreviewNever)
	}

	return nil
}

// LoaderOptions returns the image loader options described by the image
// section.
func (c ImageConfig) LoaderOptions() []image.Option {
	scaler, _ := image.ParseScaler(c.Scaler)
	opts := []image.Option{
		image.WithMaxDimension(c.MaxDimension),
		image.WithScaler(scaler),
	}
	if c.MaxBytes > 0 {
		opts = append(opts, image.WithMaxBytes(c.MaxBytes))
	}
	if c.Timeout > 0 {
		opts = append(opts, image.WithHTTPTimeout(c.Timeout))
	}
	if c.Cache {
		opts = append(opts, image.WithCache(c.CacheDir))
	}
	return opts
}

// Builder returns a theme builder configured from the quantize, score and
// theme sections. The configuration must be valid.
func (c *Config) Builder() *theme.Builder {
	variant, _ := theme.ParseVariant(c.Theme.Variant)
	return theme.NewBuilder().
		WithVariant(variant).
		WithCustomColors(c.Theme.CustomColors...).
		WithQuantizeOptions(c.Quantize).
		WithScoreOptions(c.Score)
}
