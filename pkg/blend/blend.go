// Package blend mixes colours in HCT and CAM16-UCS.
package blend

import (
	"math"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/cam16"
	"github.com/jmylchreest/tonal/pkg/hct"
)

// maxHarmonizeRotation is the largest hue shift Harmonize applies.
const maxHarmonizeRotation = 15.0

// Harmonize shifts the hue of design toward the hue of source by half the
// difference, at most 15 degrees. Chroma and tone of design are kept.
func Harmonize(design, source argb.Color) argb.Color {
	from := hct.FromARGB(design)
	to := hct.FromARGB(source)

	difference := mathutil.DifferenceDegrees(from.Hue(), to.Hue())
	rotation := math.Min(difference*0.5, maxHarmonizeRotation)
	hue := mathutil.SanitizeDegrees(from.Hue() + rotation*mathutil.RotationDirection(from.Hue(), to.Hue()))

	return hct.New(hue, from.Chroma(), from.Tone()).ToARGB()
}

// HCTHue blends the hue of from toward to by amount (0 to 1), keeping the
// chroma and tone of from.
func HCTHue(from, to argb.Color, amount float64) argb.Color {
	ucs := cam16.FromARGB(CAM16UCS(from, to, amount))
	fromCAM := cam16.FromARGB(from)
	return hct.New(ucs.Hue, fromCAM.Chroma, from.Lstar()).ToARGB()
}

// CAM16UCS linearly interpolates between from and to in CAM16-UCS.
func CAM16UCS(from, to argb.Color, amount float64) argb.Color {
	a := cam16.FromARGB(from)
	b := cam16.FromARGB(to)

	jstar := mathutil.Lerp(a.Jstar, b.Jstar, amount)
	astar := mathutil.Lerp(a.Astar, b.Astar, amount)
	bstar := mathutil.Lerp(a.Bstar, b.Bstar, amount)
	return cam16.FromUCS(jstar, astar, bstar).ToARGB()
}
