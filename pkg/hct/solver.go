package hct

import (
	"math"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/cam16"
)

const (
	// chromaSearchEndpoint stops the chroma search once the interval is
	// narrower than this.
	chromaSearchEndpoint = 0.4
	// lightnessSearchEndpoint stops the lightness search once the interval
	// is narrower than this.
	lightnessSearchEndpoint = 0.01
	// maxDeltaL is the largest L* error accepted for a trial colour.
	maxDeltaL = 0.2
	// maxDeltaE is the largest CAM16-UCS hue deviation accepted for a trial
	// colour after gamut clipping.
	maxDeltaE = 1.0

	maxChromaIterations    = 32
	maxLightnessIterations = 32
)

// Solve returns the in-gamut colour closest to the requested hue, chroma
// and tone.
//
// The search holds hue and tone fixed and binary searches chroma in
// [0, chroma]. For each chroma probe a second binary search over CAM16
// lightness J looks for a colour whose L* matches the tone and whose hue
// survives clipping into sRGB. Both loops are bounded; when nothing is
// accepted the achromatic colour of that tone is returned.
func Solve(hue, chroma, tone float64) argb.Color {
	tone = mathutil.Clamp(0, 100, tone)
	if chroma < 1.0 || math.Round(tone) <= 0.0 || math.Round(tone) >= 100.0 {
		return argb.FromLstar(tone)
	}
	hue = mathutil.SanitizeDegrees(hue)

	low := 0.0
	high := chroma
	mid := chroma
	firstProbe := true

	var answer argb.Color
	found := false

	for i := 0; i < maxChromaIterations && math.Abs(low-high) >= chromaSearchEndpoint; i++ {
		candidate, ok := findByJ(hue, mid, tone)

		if firstProbe {
			if ok {
				return candidate
			}
			firstProbe = false
			mid = low + (high-low)/2.0
			continue
		}

		if ok {
			answer = candidate
			found = true
			low = mid
		} else {
			high = mid
		}
		mid = low + (high-low)/2.0
	}

	if !found {
		return argb.FromLstar(tone)
	}
	return answer
}

// findByJ binary searches CAM16 lightness for a colour of the given hue and
// chroma whose L* is within maxDeltaL of tone. The returned colour is the
// accepted trial with the smallest hue deviation after clipping.
func findByJ(hue, chroma, tone float64) (argb.Color, bool) {
	low := 0.0
	high := 100.0

	bestDL := math.MaxFloat64
	bestDE := math.MaxFloat64
	var best argb.Color
	found := false

	for i := 0; i < maxLightnessIterations && math.Abs(low-high) > lightnessSearchEndpoint; i++ {
		mid := low + (high-low)/2.0

		clipped := cam16.FromJCH(mid, chroma, hue).ToARGB()
		clippedLstar := clipped.Lstar()
		dL := math.Abs(tone - clippedLstar)

		if dL < maxDeltaL {
			camClipped := cam16.FromARGB(clipped)
			dE := camClipped.Distance(cam16.FromJCH(camClipped.J, camClipped.Chroma, hue))
			if dE <= maxDeltaE && dE <= bestDE {
				bestDL = dL
				bestDE = dE
				best = clipped
				found = true
			}
		}

		if bestDL == 0 && bestDE == 0 {
			break
		}

		if clippedLstar < tone {
			low = mid
		} else {
			high = mid
		}
	}

	return best, found
}
