// Package cam16 implements the CAM16 colour appearance model and its
// uniform colour space (CAM16-UCS).
//
// A CAM16 value describes how a colour looks under a particular set of
// viewing conditions. Any three of the dimensions are enough to recover the
// rest; constructors accept either (J, C, h) or the UCS coordinates.
package cam16

import (
	"math"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
)

// CAM16 is the full set of appearance correlates for a colour.
type CAM16 struct {
	Hue    float64 // hue angle h in degrees, [0, 360)
	Chroma float64 // chroma C
	J      float64 // lightness
	Q      float64 // brightness
	M      float64 // colourfulness
	S      float64 // saturation

	Jstar float64 // CAM16-UCS J*
	Astar float64 // CAM16-UCS a*
	Bstar float64 // CAM16-UCS b*
}

// Distance returns the CAM16-UCS colour difference between c and other.
func (c *CAM16) Distance(other *CAM16) float64 {
	dJ := c.Jstar - other.Jstar
	dA := c.Astar - other.Astar
	dB := c.Bstar - other.Bstar
	dEPrime := math.Sqrt(dJ*dJ + dA*dA + dB*dB)
	return 1.41 * math.Pow(dEPrime, 0.63)
}

// FromARGB computes the appearance of an sRGB colour in the default viewing
// conditions.
func FromARGB(c argb.Color) *CAM16 {
	return FromXYZInViewingConditions(c.XYZ(), defaultViewingConditions())
}

// FromXYZ computes the appearance of an XYZ colour in the default viewing
// conditions.
func FromXYZ(xyz argb.XYZ) *CAM16 {
	return FromXYZInViewingConditions(xyz, defaultViewingConditions())
}

// FromXYZInViewingConditions computes the appearance of an XYZ colour in vc.
func FromXYZInViewingConditions(xyz argb.XYZ, vc *ViewingConditions) *CAM16 {
	rC, gC, bC := xyzToCAM16RGB.MulVec(xyz.X, xyz.Y, xyz.Z)

	rA := signedAdaptedResponse(vc.RgbD[0]*rC, vc.Fl)
	gA := signedAdaptedResponse(vc.RgbD[1]*gC, vc.Fl)
	bA := signedAdaptedResponse(vc.RgbD[2]*bC, vc.Fl)

	// Opponent dimensions.
	a := (11.0*rA + -12.0*gA + bA) / 11.0
	b := (rA + gA - 2.0*bA) / 9.0
	u := (20.0*rA + 20.0*gA + 21.0*bA) / 20.0
	p2 := (40.0*rA + 20.0*gA + bA) / 20.0

	hue := mathutil.SanitizeDegrees(math.Atan2(b, a) * 180.0 / math.Pi)
	hueRadians := hue * math.Pi / 180.0

	ac := p2 * vc.Nbb
	j := 100.0 * math.Pow(ac/vc.Aw, vc.C*vc.Z)
	q := (4.0 / vc.C) * math.Sqrt(j/100.0) * (vc.Aw + 4.0) * vc.FlRoot

	huePrime := hue
	if hue < 20.14 {
		huePrime = hue + 360
	}
	eHue := 0.25 * (math.Cos(huePrime*math.Pi/180.0+2.0) + 3.8)
	p1 := 50000.0 / 13.0 * eHue * vc.Nc * vc.Ncb
	t := p1 * math.Hypot(a, b) / (u + 0.305)
	alpha := math.Pow(t, 0.9) * math.Pow(1.64-math.Pow(0.29, vc.N), 0.73)

	chroma := alpha * math.Sqrt(j/100.0)
	m := chroma * vc.FlRoot
	s := 50.0 * math.Sqrt(alpha*vc.C/(vc.Aw+4.0))

	jstar, astar, bstar := ucs(j, m, hueRadians)
	return &CAM16{
		Hue:    hue,
		Chroma: chroma,
		J:      j,
		Q:      q,
		M:      m,
		S:      s,
		Jstar:  jstar,
		Astar:  astar,
		Bstar:  bstar,
	}
}

func signedAdaptedResponse(component, fl float64) float64 {
	af := math.Pow(fl*math.Abs(component)/100.0, 0.42)
	return mathutil.Signum(component) * 400.0 * af / (af + 27.13)
}

func ucs(j, m, hueRadians float64) (jstar, astar, bstar float64) {
	jstar = (1.0 + 100.0*0.007) * j / (1.0 + 0.007*j)
	mstar := math.Log(1.0+0.0228*m) / 0.0228
	return jstar, mstar * math.Cos(hueRadians), mstar * math.Sin(hueRadians)
}

// FromJCH builds a CAM16 value from lightness, chroma and hue in the default
// viewing conditions.
func FromJCH(j, chroma, hue float64) *CAM16 {
	return FromJCHInViewingConditions(j, chroma, hue, defaultViewingConditions())
}

// FromJCHInViewingConditions builds a CAM16 value from lightness, chroma and
// hue in vc.
func FromJCHInViewingConditions(j, chroma, hue float64, vc *ViewingConditions) *CAM16 {
	q := (4.0 / vc.C) * math.Sqrt(j/100.0) * (vc.Aw + 4.0) * vc.FlRoot
	m := chroma * vc.FlRoot
	var alpha float64
	if j > 0 {
		alpha = chroma / math.Sqrt(j/100.0)
	}
	s := 50.0 * math.Sqrt(alpha*vc.C/(vc.Aw+4.0))

	hueRadians := hue * math.Pi / 180.0
	jstar, astar, bstar := ucs(j, m, hueRadians)
	return &CAM16{
		Hue:    hue,
		Chroma: chroma,
		J:      j,
		Q:      q,
		M:      m,
		S:      s,
		Jstar:  jstar,
		Astar:  astar,
		Bstar:  bstar,
	}
}

// FromUCS builds a CAM16 value from CAM16-UCS coordinates in the default
// viewing conditions.
func FromUCS(jstar, astar, bstar float64) *CAM16 {
	return FromUCSInViewingConditions(jstar, astar, bstar, defaultViewingConditions())
}

// FromUCSInViewingConditions builds a CAM16 value from CAM16-UCS coordinates
// in vc.
func FromUCSInViewingConditions(jstar, astar, bstar float64, vc *ViewingConditions) *CAM16 {
	mstar := math.Hypot(astar, bstar)
	m := (math.Exp(mstar*0.0228) - 1.0) / 0.0228
	chroma := m / vc.FlRoot
	hue := mathutil.SanitizeDegrees(math.Atan2(bstar, astar) * 180.0 / math.Pi)
	j := jstar / (1.0 - (jstar-100.0)*0.007)
	return FromJCHInViewingConditions(j, chroma, hue, vc)
}

// XYZ converts the colour back to XYZ in the default viewing conditions.
func (c *CAM16) XYZ() argb.XYZ {
	return c.XYZInViewingConditions(defaultViewingConditions())
}

// XYZInViewingConditions converts the colour back to XYZ as seen in vc.
func (c *CAM16) XYZInViewingConditions(vc *ViewingConditions) argb.XYZ {
	var alpha float64
	if c.Chroma != 0 && c.J != 0 {
		alpha = c.Chroma / math.Sqrt(c.J/100.0)
	}

	t := math.Pow(alpha/math.Pow(1.64-math.Pow(0.29, vc.N), 0.73), 1.0/0.9)
	hRad := c.Hue * math.Pi / 180.0
	eHue := 0.25 * (math.Cos(hRad+2.0) + 3.8)
	ac := vc.Aw * math.Pow(c.J/100.0, 1.0/vc.C/vc.Z)
	p1 := eHue * (50000.0 / 13.0) * vc.Nc * vc.Ncb
	p2 := ac / vc.Nbb

	hSin := math.Sin(hRad)
	hCos := math.Cos(hRad)
	gamma := 23.0 * (p2 + 0.305) * t / (23.0*p1 + 11.0*t*hCos + 108.0*t*hSin)
	a := gamma * hCos
	b := gamma * hSin

	rA := (460.0*p2 + 451.0*a + 288.0*b) / 1403.0
	gA := (460.0*p2 - 891.0*a - 261.0*b) / 1403.0
	bA := (460.0*p2 - 220.0*a - 6300.0*b) / 1403.0

	rF := unadaptedResponse(rA, vc.Fl) / vc.RgbD[0]
	gF := unadaptedResponse(gA, vc.Fl) / vc.RgbD[1]
	bF := unadaptedResponse(bA, vc.Fl) / vc.RgbD[2]

	x, y, z := cam16RGBToXYZ.MulVec(rF, gF, bF)
	return argb.XYZ{X: x, Y: y, Z: z}
}

func unadaptedResponse(adapted, fl float64) float64 {
	abs := math.Abs(adapted)
	base := math.Max(0, 27.13*abs/(400.0-abs))
	return mathutil.Signum(adapted) * (100.0 / fl) * math.Pow(base, 1.0/0.42)
}

// ToARGB converts the colour to sRGB in the default viewing conditions.
// Out-of-gamut results are clamped per channel.
func (c *CAM16) ToARGB() argb.Color {
	return argb.FromXYZ(c.XYZ())
}

// Viewed converts the colour to sRGB as seen in vc.
func (c *CAM16) Viewed(vc *ViewingConditions) argb.Color {
	return argb.FromXYZ(c.XYZInViewingConditions(vc))
}
