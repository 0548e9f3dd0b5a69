package palette

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/hct"
)

// Chroma levels and hue offsets of the core palettes.
const (
	PrimaryMinChroma     = 48.0
	SecondaryChroma      = 16.0
	TertiaryHueOffset    = 60.0
	TertiaryChroma       = 24.0
	NeutralChroma        = 4.0
	NeutralVariantChroma = 8.0
	ErrorHue             = 25.0
	ErrorChroma          = 84.0
)

// CorePalette is the set of tonal palettes a scheme draws its roles from.
type CorePalette struct {
	Primary        TonalPalette `json:"primary" yaml:"primary"`
	Secondary      TonalPalette `json:"secondary" yaml:"secondary"`
	Tertiary       TonalPalette `json:"tertiary" yaml:"tertiary"`
	Neutral        TonalPalette `json:"neutral" yaml:"neutral"`
	NeutralVariant TonalPalette `json:"neutralVariant" yaml:"neutralVariant"`
	Error          TonalPalette `json:"error" yaml:"error"`
}

// NewCorePalette derives the tonal spot core palette from a seed colour.
// The primary keeps the seed hue with at least PrimaryMinChroma; the other
// palettes use fixed, muted chroma levels.
func NewCorePalette(seed argb.Color) *CorePalette {
	h := hct.FromARGB(seed)
	hue := h.Hue()

	return &CorePalette{
		Primary:        FromHueAndChroma(hue, math.Max(PrimaryMinChroma, h.Chroma())),
		Secondary:      FromHueAndChroma(hue, SecondaryChroma),
		Tertiary:       FromHueAndChroma(hue+TertiaryHueOffset, TertiaryChroma),
		Neutral:        FromHueAndChroma(hue, NeutralChroma),
		NeutralVariant: FromHueAndChroma(hue, NeutralVariantChroma),
		Error:          FromHueAndChroma(ErrorHue, ErrorChroma),
	}
}

// NewContentCorePalette derives a core palette that stays close to the seed
// colour: the primary uses the seed chroma as is and the other palettes
// scale with it.
func NewContentCorePalette(seed argb.Color) *CorePalette {
	h := hct.FromARGB(seed)
	hue := h.Hue()
	chroma := h.Chroma()

	return &CorePalette{
		Primary:        FromHueAndChroma(hue, chroma),
		Secondary:      FromHueAndChroma(hue, chroma/3),
		Tertiary:       FromHueAndChroma(hue+TertiaryHueOffset, chroma/2),
		Neutral:        FromHueAndChroma(hue, math.Min(chroma/12, NeutralChroma)),
		NeutralVariant: FromHueAndChroma(hue, math.Min(chroma/6, NeutralVariantChroma)),
		Error:          FromHueAndChroma(ErrorHue, ErrorChroma),
	}
}
