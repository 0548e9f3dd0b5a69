// Package palette provides tonal palettes and the core palette of a theme.
package palette

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/hct"
)

var canonicalTones = []float64{
	0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50,
	55, 60, 65, 70, 75, 80, 85, 90, 95, 98, 99, 100,
}

// CanonicalTones returns the tones materialized by TonalPalette.Tones, in
// ascending order. Every tone used by the scheme role table is included.
func CanonicalTones() []float64 {
	return slices.Clone(canonicalTones)
}

// TonalPalette is a fixed hue and chroma from which colours of any tone can
// be produced. It holds no cache and is safe for concurrent use.
type TonalPalette struct {
	hue    float64
	chroma float64
}

// FromHueAndChroma returns the palette of the given hue and chroma. The hue
// is wrapped into [0, 360).
func FromHueAndChroma(hue, chroma float64) TonalPalette {
	return TonalPalette{hue: mathutil.SanitizeDegrees(hue), chroma: chroma}
}

// FromColor returns the palette of the hue and chroma of c.
func FromColor(c argb.Color) TonalPalette {
	h := hct.FromARGB(c)
	return FromHueAndChroma(h.Hue(), h.Chroma())
}

// Hue returns the palette hue in degrees.
func (p TonalPalette) Hue() float64 { return p.hue }

// Chroma returns the requested palette chroma. Individual tones may have
// less when the chroma is out of gamut at that tone.
func (p TonalPalette) Chroma() float64 { return p.chroma }

// Tone returns the colour of the palette at tone t, 0 (black) to 100 (white).
func (p TonalPalette) Tone(t float64) argb.Color {
	return hct.Solve(p.hue, p.chroma, t)
}

// ToneColor is one materialized tone of a palette.
type ToneColor struct {
	Tone  float64    `json:"tone" yaml:"tone"`
	Color argb.Color `json:"color" yaml:"color"`
}

// Tones returns the palette evaluated at every canonical tone, in
// ascending tone order.
func (p TonalPalette) Tones() []ToneColor {
	tones := make([]ToneColor, len(canonicalTones))
	for i, t := range canonicalTones {
		tones[i] = ToneColor{Tone: t, Color: p.Tone(t)}
	}
	return tones
}

// All returns an iterator over the canonical tones and their colours.
func (p TonalPalette) All() func(func(float64, argb.Color) bool) {
	return func(yield func(float64, argb.Color) bool) {
		for _, t := range canonicalTones {
			if !yield(t, p.Tone(t)) {
				return
			}
		}
	}
}

// String returns a human-readable representation of the palette.
func (p TonalPalette) String() string {
	result := fmt.Sprintf("Tonal palette (hue %.2f, chroma %.2f):\n", p.hue, p.chroma)
	for _, tc := range p.Tones() {
		result += fmt.Sprintf("  %5.1f: %s\n", tc.Tone, tc.Color.Hex())
	}
	return result
}

// tonalPaletteDoc is the serialized form of a TonalPalette.
type tonalPaletteDoc struct {
	Hue    float64     `json:"hue" yaml:"hue"`
	Chroma float64     `json:"chroma" yaml:"chroma"`
	Tones  []ToneColor `json:"tones" yaml:"tones"`
}

// MarshalJSON implements json.Marshaler.
func (p TonalPalette) MarshalJSON() ([]byte, error) {
	return json.Marshal(tonalPaletteDoc{Hue: p.hue, Chroma: p.chroma, Tones: p.Tones()})
}

// UnmarshalJSON implements json.Unmarshaler. Only hue and chroma are read;
// tones are always recomputed.
func (p *TonalPalette) UnmarshalJSON(data []byte) error {
	var doc tonalPaletteDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode tonal palette: %w", err)
	}
	*p = FromHueAndChroma(doc.Hue, doc.Chroma)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p TonalPalette) MarshalYAML() (any, error) {
	return tonalPaletteDoc{Hue: p.hue, Chroma: p.chroma, Tones: p.Tones()}, nil
}
