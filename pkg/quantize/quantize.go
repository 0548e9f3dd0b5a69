// Package quantize reduces the pixels of an image to a small set of
// representative colours with populations.
//
// The pipeline has three independent stages: a histogram of distinct
// colours, a median cut that seeds the clusters, and a weighted k-means in
// CIE L*a*b* that refines them.
package quantize

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/jmylchreest/tonal/pkg/argb"
)

var (
	// ErrNoPixels is returned when there is nothing to quantize.
	ErrNoPixels = errors.New("no pixels to quantize")

	// ErrInvalidMaxColors is returned when fewer than one colour is requested.
	ErrInvalidMaxColors = errors.New("max colors must be at least 1")
)

// Options configures the quantizer.
type Options struct {
	// MaxColors is the upper bound on the number of colours returned.
	MaxColors int `json:"max_colors" yaml:"max_colors"`

	// MaxIterations bounds the k-means refinement.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`

	// Workers is the number of goroutines used for the k-means assignment
	// step. Values below 2 run sequentially.
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultOptions returns the default quantizer options.
func DefaultOptions() Options {
	return Options{
		MaxColors:     128,
		MaxIterations: 10,
		Workers:       runtime.GOMAXPROCS(0),
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.MaxColors < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidMaxColors, o.MaxColors)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", o.MaxIterations)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	return nil
}

// QuantizedColor is a representative colour and the number of input pixels
// it stands for.
type QuantizedColor struct {
	Color      argb.Color `json:"color" yaml:"color"`
	Population int        `json:"population" yaml:"population"`
}

// Result is the output of the quantizer: unique colours ordered by
// population, highest first, ties broken by first appearance in the input.
type Result []QuantizedColor

// Map returns the result as a colour to population map.
func (r Result) Map() map[argb.Color]int {
	m := make(map[argb.Color]int, len(r))
	for _, qc := range r {
		m[qc.Color] = qc.Population
	}
	return m
}

// Total returns the sum of all populations.
func (r Result) Total() int {
	total := 0
	for _, qc := range r {
		total += qc.Population
	}
	return total
}

// Colors returns the representative colours in result order.
func (r Result) Colors() []argb.Color {
	colors := make([]argb.Color, len(r))
	for i, qc := range r {
		colors[i] = qc.Color
	}
	return colors
}

// Quantize reduces pixels to at most opts.MaxColors representative colours.
// Alpha is ignored. Populations sum to len(pixels).
func Quantize(pixels []argb.Color, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quantize options: %w", err)
	}
	if len(pixels) == 0 {
		return nil, ErrNoPixels
	}

	hist := NewHistogram(pixels)

	// Few enough distinct colours: the exact histogram is the answer.
	if hist.Len() <= opts.MaxColors {
		result := make(Result, hist.Len())
		copy(result, hist.entries)
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Population > result[j].Population
		})
		return result, nil
	}

	seeds := MedianCut(hist, opts.MaxColors)
	return Refine(hist, seeds, opts), nil
}
