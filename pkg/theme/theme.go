// Package theme assembles a complete colour theme from a seed colour or
// from the pixels of an image.
package theme

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/blend"
	"github.com/jmylchreest/tonal/pkg/palette"
	"github.com/jmylchreest/tonal/pkg/quantize"
	"github.com/jmylchreest/tonal/pkg/scheme"
	"github.com/jmylchreest/tonal/pkg/score"
)

// ErrNoPixels is returned when an image yields nothing to derive a theme
// from. It wraps quantize.ErrNoPixels.
var ErrNoPixels = errors.New("no usable pixels for theme")

// Variant selects how the core palette is derived from the seed.
type Variant string

const (
	// VariantTonalSpot keeps the seed hue with a vivid primary and muted
	// supporting palettes.
	VariantTonalSpot Variant = "tonal"

	// VariantContent follows the seed chroma closely.
	VariantContent Variant = "content"
)

// ParseVariant converts a string into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantTonalSpot, "":
		return VariantTonalSpot, nil
	case VariantContent:
		return VariantContent, nil
	default:
		return "", fmt.Errorf("unknown variant %q (valid: %s, %s)", s, VariantTonalSpot, VariantContent)
	}
}

// CorePalette returns the core palette of seed for this variant.
func (v Variant) CorePalette(seed argb.Color) *palette.CorePalette {
	if v == VariantContent {
		return palette.NewContentCorePalette(seed)
	}
	return palette.NewCorePalette(seed)
}

// CustomColor is an extra named colour carried into the theme.
type CustomColor struct {
	Name  string     `json:"name" yaml:"name"`
	Value argb.Color `json:"value" yaml:"value"`
	// Blend harmonizes the value toward the theme source before use.
	Blend bool `json:"blend" yaml:"blend"`
}

// ColorGroup is the four tones a custom colour contributes to one mode.
type ColorGroup struct {
	Color            argb.Color `json:"color" yaml:"color"`
	OnColor          argb.Color `json:"onColor" yaml:"onColor"`
	ColorContainer   argb.Color `json:"colorContainer" yaml:"colorContainer"`
	OnColorContainer argb.Color `json:"onColorContainer" yaml:"onColorContainer"`
}

// CustomColorGroup is a custom colour resolved against a theme source.
type CustomColorGroup struct {
	Color CustomColor `json:"color" yaml:"color"`
	// Value is the colour actually used, after optional harmonization.
	Value argb.Color `json:"value" yaml:"value"`
	Light ColorGroup `json:"light" yaml:"light"`
	Dark  ColorGroup `json:"dark" yaml:"dark"`
}

// Schemes holds the light and dark schemes of a theme.
type Schemes struct {
	Light *scheme.Scheme `json:"light,omitempty" yaml:"light,omitempty"`
	Dark  *scheme.Scheme `json:"dark,omitempty" yaml:"dark,omitempty"`
}

// Theme is the complete output of the engine. It is not modified after
// construction.
type Theme struct {
	Source       argb.Color           `json:"source" yaml:"source"`
	Variant      Variant              `json:"variant" yaml:"variant"`
	Schemes      Schemes              `json:"schemes" yaml:"schemes"`
	Palettes     *palette.CorePalette `json:"palettes" yaml:"palettes"`
	CustomColors []CustomColorGroup   `json:"customColors" yaml:"customColors"`
}

func newTheme(source argb.Color, variant Variant, custom []CustomColor) *Theme {
	core := variant.CorePalette(source)

	groups := make([]CustomColorGroup, 0, len(custom))
	for _, c := range custom {
		groups = append(groups, resolveCustomColor(source, c))
	}

	return &Theme{
		Source:  source,
		Variant: variant,
		Schemes: Schemes{
			Light: scheme.Light(core),
			Dark:  scheme.Dark(core),
		},
		Palettes:     core,
		CustomColors: groups,
	}
}

func resolveCustomColor(source argb.Color, c CustomColor) CustomColorGroup {
	value := c.Value.Opaque()
	if c.Blend {
		value = blend.Harmonize(value, source)
	}

	tones := palette.NewCorePalette(value).Primary
	return CustomColorGroup{
		Color: c,
		Value: value,
		Light: ColorGroup{
			Color:            tones.Tone(40),
			OnColor:          tones.Tone(100),
			ColorContainer:   tones.Tone(90),
			OnColorContainer: tones.Tone(10),
		},
		Dark: ColorGroup{
			Color:            tones.Tone(80),
			OnColor:          tones.Tone(20),
			ColorContainer:   tones.Tone(30),
			OnColorContainer: tones.Tone(90),
		},
	}
}

// FromSourceColor builds the tonal spot theme of source.
func FromSourceColor(source argb.Color, customColors ...CustomColor) *Theme {
	return NewBuilder().WithCustomColors(customColors...).Build(source)
}

// FromImage builds the tonal spot theme of the best seed colour found in
// pixels.
func FromImage(pixels []argb.Color, customColors ...CustomColor) (*Theme, error) {
	return NewBuilder().WithCustomColors(customColors...).BuildFromPixels(pixels)
}

// SourceColorFromPixels quantizes and scores pixels and returns the best
// seed colour.
func SourceColorFromPixels(pixels []argb.Color) (argb.Color, error) {
	return NewBuilder().SourceColor(pixels)
}

// SourceColorFromImage returns the best seed colour of img.
func SourceColorFromImage(img image.Image) (argb.Color, error) {
	return NewBuilder().SourceColor(quantize.PixelsFromImage(img))
}

// Builder configures theme construction.
type Builder struct {
	variant      Variant
	customColors []CustomColor
	quantizeOpts quantize.Options
	scoreOpts    score.Options
}

// NewBuilder returns a builder with default options.
func NewBuilder() *Builder {
	return &Builder{
		variant:      VariantTonalSpot,
		quantizeOpts: quantize.DefaultOptions(),
		scoreOpts:    score.DefaultOptions(),
	}
}

// WithVariant sets the core palette variant.
func (b *Builder) WithVariant(v Variant) *Builder {
	b.variant = v
	return b
}

// WithCustomColors appends custom colours to the theme.
func (b *Builder) WithCustomColors(colors ...CustomColor) *Builder {
	b.customColors = append(b.customColors, colors...)
	return b
}

// WithQuantizeOptions sets the quantizer options used for images.
func (b *Builder) WithQuantizeOptions(opts quantize.Options) *Builder {
	b.quantizeOpts = opts
	return b
}

// WithScoreOptions sets the scorer options used for images.
func (b *Builder) WithScoreOptions(opts score.Options) *Builder {
	b.scoreOpts = opts
	return b
}

// Build returns the theme of source.
func (b *Builder) Build(source argb.Color) *Theme {
	return newTheme(source.Opaque(), b.variant, b.customColors)
}

// Candidates quantizes and scores pixels, returning every seed candidate,
// best first.
func (b *Builder) Candidates(pixels []argb.Color) ([]score.Candidate, error) {
	if err := b.scoreOpts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid score options: %w", err)
	}

	result, err := quantize.Quantize(pixels, b.quantizeOpts)
	if err != nil {
		if errors.Is(err, quantize.ErrNoPixels) {
			return nil, fmt.Errorf("%w: %w", ErrNoPixels, err)
		}
		return nil, fmt.Errorf("failed to quantize pixels: %w", err)
	}

	return score.Rank(result, b.scoreOpts), nil
}

// SourceColor returns the best seed colour of pixels.
func (b *Builder) SourceColor(pixels []argb.Color) (argb.Color, error) {
	candidates, err := b.Candidates(pixels)
	if err != nil {
		return 0, err
	}
	return candidates[0].Color, nil
}

// BuildFromPixels returns the theme of the best seed colour in pixels.
func (b *Builder) BuildFromPixels(pixels []argb.Color) (*Theme, error) {
	source, err := b.SourceColor(pixels)
	if err != nil {
		return nil, err
	}
	return b.Build(source), nil
}

// BuildFromImage returns the theme of the best seed colour in img.
func (b *Builder) BuildFromImage(img image.Image) (*Theme, error) {
	return b.BuildFromPixels(quantize.PixelsFromImage(img))
}
