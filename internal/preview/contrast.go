package preview

import (
	"github.com/jmylchreest/tonal/pkg/argb"
)

// Luminance returns the WCAG 2.0 relative luminance of c, from 0 (black)
// to 1 (white).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c argb.Color) float64 {
	return c.XYZ().Y / 100
}

// ContrastRatio returns the WCAG 2.0 contrast ratio between two colours,
// from 1 to 21. AA requires 4.5:1 for normal text and 3:1 for large text.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(a, b argb.Color) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Rating returns the WCAG level a contrast ratio achieves for normal text.
func Rating(ratio float64) string {
	switch {
	case ratio >= 7:
		return "AAA"
	case ratio >= 4.5:
		return "AA"
	case ratio >= 3:
		return "AA18"
	default:
		return "fail"
	}
}

// textOn returns black or white, whichever reads better on bg.
func textOn(bg argb.Color) argb.Color {
	const black, white argb.Color = 0xff000000, 0xffffffff
	if ContrastRatio(bg, black) >= ContrastRatio(bg, white) {
		return black
	}
	return white
}
