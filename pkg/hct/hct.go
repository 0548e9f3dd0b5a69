// Package hct provides the HCT (hue, chroma, tone) colour model.
//
// Hue and chroma come from CAM16 and tone is CIE L*. Because tone is L*,
// two colours whose tones differ by 40 or more have a contrast ratio of at
// least 3:1, and by 50 or more at least 4.5:1.
package hct

import (
	"errors"
	"fmt"
	"math"

	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/cam16"
)

var (
	// ErrNotFinite is returned when a hue, chroma or tone is NaN or infinite.
	ErrNotFinite = errors.New("value is not finite")

	// ErrNegativeChroma is returned when a chroma is below zero.
	ErrNegativeChroma = errors.New("chroma must not be negative")
)

// HCT is a colour expressed as hue, chroma and tone. The zero value is
// black. Values are immutable unless modified through the Set methods, each
// of which re-solves the colour.
type HCT struct {
	hue    float64
	chroma float64
	tone   float64
	argb   argb.Color
}

// New solves for the colour closest to the requested hue, chroma and tone.
// The result is always in the sRGB gamut; when the chroma cannot be
// reached at that hue and tone the chroma of the result is lower.
func New(hue, chroma, tone float64) HCT {
	return FromARGB(Solve(hue, chroma, tone))
}

// FromARGB returns the HCT representation of c. The colour is stored as
// given, so ToARGB returns c exactly.
func FromARGB(c argb.Color) HCT {
	cam := cam16.FromARGB(c)
	return HCT{
		hue:    cam.Hue,
		chroma: cam.Chroma,
		tone:   c.Lstar(),
		argb:   c.Opaque(),
	}
}

// Hue returns the hue in degrees, [0, 360).
func (h HCT) Hue() float64 { return h.hue }

// Chroma returns the chroma. The maximum depends on hue and tone.
func (h HCT) Chroma() float64 { return h.chroma }

// Tone returns the tone (L*), [0, 100].
func (h HCT) Tone() float64 { return h.tone }

// ToARGB returns the packed colour. It is always opaque.
func (h HCT) ToARGB() argb.Color { return h.argb.Opaque() }

// RGBA implements color.Color.
func (h HCT) RGBA() (r, g, b, a uint32) { return h.ToARGB().RGBA() }

// CAM16 returns the appearance correlates of the colour.
func (h HCT) CAM16() *cam16.CAM16 { return cam16.FromARGB(h.argb) }

// SetHue re-solves the colour with a new hue. Chroma may decrease if the
// new hue cannot reach it at the current tone.
func (h *HCT) SetHue(hue float64) {
	*h = New(hue, h.chroma, h.tone)
}

// SetChroma re-solves the colour with a new chroma.
func (h *HCT) SetChroma(chroma float64) {
	*h = New(h.hue, chroma, h.tone)
}

// SetTone re-solves the colour with a new tone. Chroma may decrease if the
// current chroma cannot be reached at the new tone.
func (h *HCT) SetTone(tone float64) {
	*h = New(h.hue, h.chroma, tone)
}

// WithHue is like SetHue but returns a new colour.
func (h HCT) WithHue(hue float64) HCT { return New(hue, h.chroma, h.tone) }

// WithChroma is like SetChroma but returns a new colour.
func (h HCT) WithChroma(chroma float64) HCT { return New(h.hue, chroma, h.tone) }

// WithTone is like SetTone but returns a new colour.
func (h HCT) WithTone(tone float64) HCT { return New(h.hue, h.chroma, tone) }

// MaximumChroma returns the highest chroma reachable at the hue and tone of
// this colour.
func (h HCT) MaximumChroma() float64 {
	return h.WithChroma(200).chroma
}

// String implements fmt.Stringer.
func (h HCT) String() string {
	return fmt.Sprintf("HCT(%.2f, %.2f, %.2f) %s", h.hue, h.chroma, h.tone, h.ToARGB().Hex())
}

// Validate reports whether hue, chroma and tone are usable inputs for New.
// New itself never fails; Validate is for callers taking untrusted input.
func Validate(hue, chroma, tone float64) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"hue", hue},
		{"chroma", chroma},
		{"tone", tone},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s = %v", ErrNotFinite, v.name, v.value)
		}
	}
	if chroma < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeChroma, chroma)
	}
	return nil
}
