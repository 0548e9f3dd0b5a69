package argb

import (
	"math"

	"github.com/jmylchreest/tonal/internal/mathutil"
)

// XYZ is a CIE XYZ colour on the 0-100 scale (D65).
type XYZ struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Lab is a CIE L*a*b* colour relative to the D65 white point.
type Lab struct {
	L float64 `json:"l" yaml:"l"`
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

var (
	// srgbToXYZ converts linear sRGB (0-100) to XYZ.
	srgbToXYZ = mathutil.Matrix3{
		{0.41233895, 0.35762064, 0.18051042},
		{0.2126, 0.7152, 0.0722},
		{0.01932141, 0.11916382, 0.95034478},
	}

	// xyzToSRGB converts XYZ to linear sRGB (0-100).
	xyzToSRGB = mathutil.Matrix3{
		{3.2413774792388685, -1.5376652402851851, -0.49885366846268053},
		{-0.9691452513005321, 1.8758853451067872, 0.04156585616912061},
		{0.05562093689691305, -0.20395524564742123, 1.0571799111220335},
	}

	whitePointD65 = XYZ{X: 95.047, Y: 100.0, Z: 108.883}
)

// WhitePointD65 returns the standard D65 white point in XYZ.
func WhitePointD65() XYZ { return whitePointD65 }

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

// Linearized converts an 8-bit gamma encoded channel into linear light on
// the 0-100 scale.
func Linearized(component uint8) float64 {
	normalized := float64(component) / 255.0
	if normalized <= 0.040449936 {
		return normalized / 12.92 * 100.0
	}
	return math.Pow((normalized+0.055)/1.055, 2.4) * 100.0
}

// Delinearized converts linear light on the 0-100 scale into an 8-bit gamma
// encoded channel, rounding and clamping to [0, 255].
func Delinearized(component float64) uint8 {
	normalized := component / 100.0
	var encoded float64
	if normalized <= 0.0031308 {
		encoded = normalized * 12.92
	} else {
		encoded = 1.055*math.Pow(normalized, 1.0/2.4) - 0.055
	}
	return uint8(mathutil.ClampInt(0, 255, int(math.Round(encoded*255.0))))
}

// XYZ converts the colour to CIE XYZ.
func (c Color) XYZ() XYZ {
	x, y, z := srgbToXYZ.MulVec(Linearized(c.Red()), Linearized(c.Green()), Linearized(c.Blue()))
	return XYZ{X: x, Y: y, Z: z}
}

// FromXYZ converts CIE XYZ into an opaque colour. Out-of-gamut values are
// clamped per channel; the conversion never fails.
func FromXYZ(xyz XYZ) Color {
	r, g, b := xyzToSRGB.MulVec(xyz.X, xyz.Y, xyz.Z)
	return FromRGB(Delinearized(r), Delinearized(g), Delinearized(b))
}

// FromLinRGB converts linear sRGB components (0-100) into an opaque colour.
func FromLinRGB(r, g, b float64) Color {
	return FromRGB(Delinearized(r), Delinearized(g), Delinearized(b))
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labInvF(ft float64) float64 {
	ft3 := ft * ft * ft
	if ft3 > labEpsilon {
		return ft3
	}
	return (116*ft - 16) / labKappa
}

// Lab converts the colour to CIE L*a*b*.
func (c Color) Lab() Lab {
	xyz := c.XYZ()
	fx := labF(xyz.X / whitePointD65.X)
	fy := labF(xyz.Y / whitePointD65.Y)
	fz := labF(xyz.Z / whitePointD65.Z)
	return Lab{
		L: 116.0*fy - 16,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// FromLab converts CIE L*a*b* into an opaque colour.
func FromLab(lab Lab) Color {
	fy := (lab.L + 16.0) / 116.0
	fx := lab.A/500.0 + fy
	fz := fy - lab.B/200.0
	return FromXYZ(XYZ{
		X: labInvF(fx) * whitePointD65.X,
		Y: labInvF(fy) * whitePointD65.Y,
		Z: labInvF(fz) * whitePointD65.Z,
	})
}

// Lstar returns the L* (perceptual lightness) of the colour, 0-100.
func (c Color) Lstar() float64 {
	return LstarFromY(c.XYZ().Y)
}

// YFromLstar converts L* into relative luminance Y on the 0-100 scale.
func YFromLstar(lstar float64) float64 {
	if lstar > 8.0 {
		ft := (lstar + 16.0) / 116.0
		return ft * ft * ft * 100.0
	}
	return lstar / labKappa * 100.0
}

// LstarFromY converts relative luminance Y (0-100) into L*.
func LstarFromY(y float64) float64 {
	return 116.0*labF(y/100.0) - 16.0
}

// FromLstar returns the achromatic colour with the given L*.
func FromLstar(lstar float64) Color {
	y := YFromLstar(lstar)
	component := Delinearized(y)
	return FromRGB(component, component, component)
}
