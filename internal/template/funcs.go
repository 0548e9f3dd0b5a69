// Package template renders themes through user-supplied text templates.
package template

import (
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/blend"
	"github.com/jmylchreest/tonal/pkg/hct"
	"github.com/jmylchreest/tonal/pkg/palette"
	"github.com/jmylchreest/tonal/pkg/scheme"
)

// Funcs returns the functions available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		// Role and tone access.
		"role":   roleFunc,
		"has":    hasFunc,
		"tone":   toneFunc,
		"custom": customFunc,

		// Format conversion.
		"hex":        hexFunc,
		"hexAlpha":   hexAlphaFunc,
		"hexNoHash":  hexNoHashFunc,
		"rgb":        rgbFunc,
		"rgba":       rgbaFunc,
		"rgbDecimal": rgbDecimalFunc,
		"rgbSpaces":  rgbSpacesFunc,

		// Colour manipulation.
		"withAlpha": withAlphaFunc,
		"withTone":  withToneFunc,
		"harmonize": blend.Harmonize,

		// Colour metadata.
		"hue":    func(c argb.Color) float64 { return hct.FromARGB(c).Hue() },
		"chroma": func(c argb.Color) float64 { return hct.FromARGB(c).Chroma() },
		"lstar":  func(c argb.Color) float64 { return c.Lstar() },

		// String manipulation, with pipe-friendly argument order.
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// roleFunc returns the colour of a role in s.
//
//	{{ role .Dark "onPrimary" | hex }}
func roleFunc(s *scheme.Scheme, name string) (argb.Color, error) {
	if s == nil {
		return 0, fmt.Errorf("role %q: scheme not rendered for this mode", name)
	}
	return s.Get(scheme.Role(name))
}

// hasFunc reports whether s is present and defines the role.
func hasFunc(s *scheme.Scheme, name string) bool {
	if s == nil {
		return false
	}
	_, err := s.Get(scheme.Role(name))
	return err == nil
}

// toneFunc returns palette p at tone t.
//
//	{{ tone .Palettes.Primary 40 | hex }}
func toneFunc(p palette.TonalPalette, t float64) (argb.Color, error) {
	if err := checkTone(t); err != nil {
		return 0, err
	}
	return p.Tone(t), nil
}

func checkTone(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: tone = %v", hct.ErrNotFinite, t)
	}
	if t < 0 || t > 100 {
		return fmt.Errorf("tone %g out of range (0-100)", t)
	}
	return nil
}

// customFunc returns the resolved custom colour group called name.
func customFunc(data *Data, name string) (CustomColor, error) {
	for _, cc := range data.CustomColors {
		if cc.Name == name {
			return cc, nil
		}
	}
	return CustomColor{}, fmt.Errorf("custom colour %q not found", name)
}

func hexFunc(c argb.Color) string {
	return c.Hex()
}

// hexAlphaFunc returns the colour as #rrggbbaa.
func hexAlphaFunc(c argb.Color) string {
	return fmt.Sprintf("%s%02x", c.Hex(), c.Alpha())
}

func hexNoHashFunc(c argb.Color) string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// rgbFunc returns the CSS rgb(r,g,b) form.
func rgbFunc(c argb.Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.Red(), c.Green(), c.Blue())
}

// rgbaFunc returns the CSS rgba(r,g,b,a) form with alpha from 0 to 1.
func rgbaFunc(c argb.Color) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.Red(), c.Green(), c.Blue(), formatAlpha(c.Alpha()))
}

// rgbDecimalFunc returns "r,g,b".
func rgbDecimalFunc(c argb.Color) string {
	return fmt.Sprintf("%d,%d,%d", c.Red(), c.Green(), c.Blue())
}

// rgbSpacesFunc returns "r g b".
func rgbSpacesFunc(c argb.Color) string {
	return fmt.Sprintf("%d %d %d", c.Red(), c.Green(), c.Blue())
}

func formatAlpha(a uint8) string {
	return fmt.Sprintf("%.2f", float64(a)/255)
}

// withAlphaFunc returns c with alpha set from 0.0 to 1.0. Takes the colour
// last so it works in pipes:
//
//	{{ role .Light "surface" | withAlpha 0.8 | rgba }}
func withAlphaFunc(alpha float64, c argb.Color) (argb.Color, error) {
	if math.IsNaN(alpha) {
		return 0, fmt.Errorf("%w: alpha = %v", hct.ErrNotFinite, alpha)
	}
	if alpha < 0 || alpha > 1 {
		return 0, fmt.Errorf("alpha %g out of range (0-1)", alpha)
	}
	a := uint32(math.Round(alpha * 255))
	return argb.Color(a<<24 | uint32(c)&0x00ffffff), nil
}

// withToneFunc returns c moved to tone t, keeping hue and chroma where the
// gamut allows.
func withToneFunc(t float64, c argb.Color) (argb.Color, error) {
	if err := checkTone(t); err != nil {
		return 0, err
	}
	return hct.FromARGB(c).WithTone(t).ToARGB(), nil
}

// trimPrefixFunc removes a prefix from a string, prefix first:
//
//	{{ value | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc replaces all occurrences of old with new:
//
//	{{ value | replace "_" "-" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
