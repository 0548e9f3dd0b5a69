// Package argb provides the packed colour type used throughout tonal and
// the conversions between sRGB, CIE XYZ, CIE L*a*b* and L*.
package argb

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned when a hex colour string cannot be parsed.
var ErrInvalidHex = errors.New("invalid hex colour")

// Color is a packed 0xAARRGGBB colour with 8 bits per channel.
type Color uint32

// FromRGB returns an opaque colour from its red, green and blue channels.
func FromRGB(r, g, b uint8) Color {
	return Color(0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromColor converts any color.Color into an opaque packed colour.
// Alpha-premultiplied channels are un-premultiplied first.
func FromColor(c color.Color) Color {
	if a, ok := c.(Color); ok {
		return a.Opaque()
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGB(n.R, n.G, n.B)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red channel.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c Color) Blue() uint8 { return uint8(c) }

// IsOpaque reports whether the alpha channel is 255.
func (c Color) IsOpaque() bool { return c.Alpha() == 0xff }

// Opaque returns c with its alpha channel set to 255.
func (c Color) Opaque() Color { return c | 0xff000000 }

// RGBA implements color.Color. The colour is always reported as opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.Red())
	r |= r << 8
	g = uint32(c.Green())
	g |= g << 8
	b = uint32(c.Blue())
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex returns the colour as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red(), c.Green(), c.Blue())
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// HexFromARGB returns the colour as a lowercase "#rrggbb" string.
func HexFromARGB(c Color) string {
	return c.Hex()
}

// FromHex parses "#rgb", "#rrggbb" or "#aarrggbb" (the leading '#' is
// optional). The alpha channel of an eight digit value is discarded; the
// returned colour is always opaque.
func FromHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		hex = hex[2:]
	default:
		return 0, fmt.Errorf("%w: %q (expected 3, 6 or 8 hex digits)", ErrInvalidHex, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return Color(0xff000000 | uint32(v)), nil
}

// MustFromHex is like FromHex but panics on error. Intended for constants.
func MustFromHex(s string) Color {
	c, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
