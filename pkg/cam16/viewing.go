package cam16

import (
	"math"
	"sync"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
)

var (
	// xyzToCAM16RGB converts XYZ into the CAM16 cone space.
	xyzToCAM16RGB = mathutil.Matrix3{
		{0.401288, 0.650173, -0.051461},
		{-0.250268, 1.204414, 0.045854},
		{-0.002079, 0.048952, 0.953127},
	}

	// cam16RGBToXYZ converts the CAM16 cone space back into XYZ.
	cam16RGBToXYZ = mathutil.Matrix3{
		{1.86206786, -1.01125463, 0.14918677},
		{0.38752654, 0.62144744, -0.00897398},
		{-0.01584150, -0.03412294, 1.04996444},
	}
)

// ViewingConditions holds the environment-dependent constants of the
// appearance model. Values are derived once by MakeViewingConditions and are
// read-only afterwards.
type ViewingConditions struct {
	WhitePoint argb.XYZ

	N      float64
	Aw     float64
	Nbb    float64
	Ncb    float64
	C      float64
	Nc     float64
	RgbD   [3]float64
	Fl     float64
	FlRoot float64
	Z      float64
}

// MakeViewingConditions derives viewing conditions from the physical
// parameters of the environment.
//
//   - whitePoint: the adopted white in XYZ.
//   - adaptingLuminance: luminance of the adapting field in cd/m^2. Values
//     <= 0 select the default of 200/pi times the luminance of mid grey.
//   - backgroundLstar: L* of the background, floored at 0.1.
//   - surround: 0 (dark) to 2 (average).
//   - discountingIlluminant: whether the eye fully adapts to the illuminant.
func MakeViewingConditions(whitePoint argb.XYZ, adaptingLuminance, backgroundLstar, surround float64, discountingIlluminant bool) *ViewingConditions {
	if adaptingLuminance <= 0 {
		adaptingLuminance = defaultAdaptingLuminance()
	}
	backgroundLstar = math.Max(0.1, backgroundLstar)

	rW, gW, bW := xyzToCAM16RGB.MulVec(whitePoint.X, whitePoint.Y, whitePoint.Z)

	f := 0.8 + surround/10.0
	var c float64
	if f >= 0.9 {
		c = mathutil.Lerp(0.59, 0.69, (f-0.9)*10.0)
	} else {
		c = mathutil.Lerp(0.525, 0.59, (f-0.8)*10.0)
	}

	d := 1.0
	if !discountingIlluminant {
		d = f * (1.0 - (1.0/3.6)*math.Exp((-adaptingLuminance-42.0)/92.0))
	}
	d = mathutil.Clamp(0, 1, d)

	rgbD := [3]float64{
		d*(100.0/rW) + 1.0 - d,
		d*(100.0/gW) + 1.0 - d,
		d*(100.0/bW) + 1.0 - d,
	}

	k := 1.0 / (5.0*adaptingLuminance + 1.0)
	k4 := k * k * k * k
	k4F := 1.0 - k4
	fl := k4*adaptingLuminance + 0.1*k4F*k4F*math.Cbrt(5.0*adaptingLuminance)

	n := argb.YFromLstar(backgroundLstar) / whitePoint.Y
	z := 1.48 + math.Sqrt(n)
	nbb := 0.725 / math.Pow(n, 0.2)
	ncb := nbb

	rA := adaptedResponse(fl * rgbD[0] * rW / 100.0)
	gA := adaptedResponse(fl * rgbD[1] * gW / 100.0)
	bA := adaptedResponse(fl * rgbD[2] * bW / 100.0)
	aw := (2.0*rA + gA + 0.05*bA) * nbb

	return &ViewingConditions{
		WhitePoint: whitePoint,
		N:          n,
		Aw:         aw,
		Nbb:        nbb,
		Ncb:        ncb,
		C:          c,
		Nc:         f,
		RgbD:       rgbD,
		Fl:         fl,
		FlRoot:     math.Pow(fl, 0.25),
		Z:          z,
	}
}

// adaptedResponse applies the post-adaptation compression to a positive,
// luminance-scaled cone response.
func adaptedResponse(scaled float64) float64 {
	af := math.Pow(scaled, 0.42)
	return 400.0 * af / (af + 27.13)
}

func defaultAdaptingLuminance() float64 {
	return 200.0 / math.Pi * argb.YFromLstar(50.0) / 100.0
}

var (
	defaultOnce       sync.Once
	defaultConditions *ViewingConditions
)

// DefaultViewingConditions returns a copy of the sRGB-like frame used
// everywhere unless stated otherwise: D65 white, default adapting luminance,
// a mid-grey background, average surround and no illuminant discounting.
func DefaultViewingConditions() *ViewingConditions {
	vc := *defaultViewingConditions()
	return &vc
}

// defaultViewingConditions returns the shared default frame. Callers must
// not modify it.
func defaultViewingConditions() *ViewingConditions {
	defaultOnce.Do(func() {
		defaultConditions = MakeViewingConditions(argb.WhitePointD65(), defaultAdaptingLuminance(), 50.0, 2.0, false)
	})
	return defaultConditions
}
