package quantize

import (
	"image"
	"image/color"

	"github.com/jmylchreest/tonal/pkg/argb"
)

// Histogram holds the distinct colours of a pixel set and their counts, in
// order of first appearance.
type Histogram struct {
	entries []QuantizedColor
}

// NewHistogram aggregates pixels into distinct opaque colours.
func NewHistogram(pixels []argb.Color) Histogram {
	index := make(map[argb.Color]int)
	entries := make([]QuantizedColor, 0, 256)

	for _, p := range pixels {
		c := p.Opaque()
		if i, ok := index[c]; ok {
			entries[i].Population++
			continue
		}
		index[c] = len(entries)
		entries = append(entries, QuantizedColor{Color: c, Population: 1})
	}

	return Histogram{entries: entries}
}

// Len returns the number of distinct colours.
func (h Histogram) Len() int {
	return len(h.entries)
}

// Total returns the number of pixels counted.
func (h Histogram) Total() int {
	return Result(h.entries).Total()
}

// Entries returns a copy of the distinct colours in first appearance order.
func (h Histogram) Entries() []QuantizedColor {
	out := make([]QuantizedColor, len(h.entries))
	copy(out, h.entries)
	return out
}

// PixelsFromImage returns the fully opaque pixels of img in row-major
// order. When img has no fully opaque pixel every pixel is returned with
// its alpha forced to opaque, so a transparent image still yields colours.
func PixelsFromImage(img image.Image) []argb.Color {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return nil
	}

	all := make([]argb.Color, 0, total)
	opaque := make([]argb.Color, 0, total)

	visit := func(r, g, b, a uint8) {
		c := argb.Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
		all = append(all, c.Opaque())
		if a == 0xff {
			opaque = append(opaque, c)
		}
	}

	// Fast path for the common decoded formats.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, y):]
			for x := 0; x < bounds.Dx(); x++ {
				px := row[x*4 : x*4+4 : x*4+4]
				visit(px[0], px[1], px[2], px[3])
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				visit(n.R, n.G, n.B, n.A)
			}
		}
	}

	if len(opaque) == 0 {
		return all
	}
	return opaque
}
