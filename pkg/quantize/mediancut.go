package quantize

import (
	"math"
	"sort"

	"github.com/jmylchreest/tonal/pkg/argb"
)

// colorBox is a set of histogram entries bounded by its channel extents.
type colorBox struct {
	entries    []QuantizedColor
	population int

	rMin, rMax uint8
	gMin, gMax uint8
	bMin, bMax uint8
}

func newColorBox(entries []QuantizedColor) colorBox {
	box := colorBox{entries: entries}
	if len(entries) == 0 {
		return box
	}

	first := entries[0].Color
	box.rMin, box.rMax = first.Red(), first.Red()
	box.gMin, box.gMax = first.Green(), first.Green()
	box.bMin, box.bMax = first.Blue(), first.Blue()

	for _, e := range entries {
		box.population += e.Population
		r, g, b := e.Color.Red(), e.Color.Green(), e.Color.Blue()
		box.rMin = min(box.rMin, r)
		box.rMax = max(box.rMax, r)
		box.gMin = min(box.gMin, g)
		box.gMax = max(box.gMax, g)
		box.bMin = min(box.bMin, b)
		box.bMax = max(box.bMax, b)
	}

	return box
}

func (b colorBox) canSplit() bool {
	return len(b.entries) > 1 && (b.rMax > b.rMin || b.gMax > b.gMin || b.bMax > b.bMin)
}

// longestAxis returns 0, 1 or 2 for the red, green or blue channel with the
// widest range. Ties favour red, then green.
func (b colorBox) longestAxis() int {
	rRange := b.rMax - b.rMin
	gRange := b.gMax - b.gMin
	bRange := b.bMax - b.bMin

	if rRange >= gRange && rRange >= bRange {
		return 0
	}
	if gRange >= bRange {
		return 1
	}
	return 2
}

func axisValue(c argb.Color, axis int) uint8 {
	switch axis {
	case 0:
		return c.Red()
	case 1:
		return c.Green()
	default:
		return c.Blue()
	}
}

// split divides the box at the population median of its longest axis.
func (b colorBox) split() (colorBox, colorBox, bool) {
	if !b.canSplit() {
		return colorBox{}, colorBox{}, false
	}

	axis := b.longestAxis()
	ordered := append([]QuantizedColor(nil), b.entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return axisValue(ordered[i].Color, axis) < axisValue(ordered[j].Color, axis)
	})

	half := (b.population + 1) / 2
	cumulative := 0
	splitIndex := 0
	for i, e := range ordered {
		cumulative += e.Population
		if cumulative >= half {
			splitIndex = i + 1
			break
		}
	}

	// Both halves must be non-empty.
	splitIndex = max(1, min(splitIndex, len(ordered)-1))

	return newColorBox(ordered[:splitIndex]), newColorBox(ordered[splitIndex:]), true
}

// centroid returns the population-weighted mean colour of the box.
func (b colorBox) centroid() argb.Color {
	var r, g, bl float64
	for _, e := range b.entries {
		w := float64(e.Population)
		r += float64(e.Color.Red()) * w
		g += float64(e.Color.Green()) * w
		bl += float64(e.Color.Blue()) * w
	}
	total := float64(b.population)
	return argb.FromRGB(
		uint8(math.Round(r/total)),
		uint8(math.Round(g/total)),
		uint8(math.Round(bl/total)),
	)
}

// MedianCut partitions the histogram into at most k boxes and returns the
// weighted centroid of each. The most populous splittable box is split on
// each step; splitting stops at k boxes or when no box can be split.
func MedianCut(h Histogram, k int) []argb.Color {
	if h.Len() == 0 || k < 1 {
		return nil
	}

	boxes := []colorBox{newColorBox(h.entries)}
	for len(boxes) < k {
		target := -1
		for i, box := range boxes {
			if !box.canSplit() {
				continue
			}
			if target < 0 || box.population > boxes[target].population {
				target = i
			}
		}
		if target < 0 {
			break
		}

		left, right, ok := boxes[target].split()
		if !ok {
			break
		}
		boxes[target] = left
		boxes = append(boxes, right)
	}

	seeds := make([]argb.Color, len(boxes))
	for i, box := range boxes {
		seeds[i] = box.centroid()
	}
	return seeds
}
