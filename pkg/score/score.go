// Package score ranks quantized colours by their suitability as the seed
// of a theme.
//
// Colours are favoured when their hue family covers a large share of the
// image and their chroma is close to or above TargetChroma. Near-duplicate
// hues are removed so the ranking offers distinct choices.
package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/cam16"
	"github.com/jmylchreest/tonal/pkg/quantize"
)

// Options holds the tunable constants of the scorer.
type Options struct {
	TargetChroma            float64    `json:"target_chroma" yaml:"target_chroma"`
	WeightProportion        float64    `json:"weight_proportion" yaml:"weight_proportion"`
	WeightChromaAbove       float64    `json:"weight_chroma_above" yaml:"weight_chroma_above"`
	WeightChromaBelow       float64    `json:"weight_chroma_below" yaml:"weight_chroma_below"`
	CutoffChroma            float64    `json:"cutoff_chroma" yaml:"cutoff_chroma"`
	CutoffExcitedProportion float64    `json:"cutoff_excited_proportion" yaml:"cutoff_excited_proportion"`
	CutoffTone              float64    `json:"cutoff_tone" yaml:"cutoff_tone"`
	HueNeighbourhood        int        `json:"hue_neighbourhood" yaml:"hue_neighbourhood"`
	DedupeWindow            float64    `json:"dedupe_window" yaml:"dedupe_window"`
	Fallback                argb.Color `json:"fallback" yaml:"fallback"`
}

// DefaultOptions returns the standard scoring constants.
func DefaultOptions() Options {
	return Options{
		TargetChroma:            48.0,
		WeightProportion:        0.7,
		WeightChromaAbove:       0.3,
		WeightChromaBelow:       0.1,
		CutoffChroma:            15.0,
		CutoffExcitedProportion: 0.01,
		CutoffTone:              10.0,
		HueNeighbourhood:        15,
		DedupeWindow:            15.0,
		Fallback:                0xff4285f4,
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.HueNeighbourhood < 0 || o.HueNeighbourhood >= 180 {
		return fmt.Errorf("hue neighbourhood must be in [0, 180), got %d", o.HueNeighbourhood)
	}
	if o.DedupeWindow < 0 || o.DedupeWindow > 180 {
		return fmt.Errorf("dedupe window must be in [0, 180], got %v", o.DedupeWindow)
	}
	if o.TargetChroma < 0 || o.CutoffChroma < 0 {
		return fmt.Errorf("chroma thresholds must not be negative")
	}
	return nil
}

// Candidate is a colour and its score.
type Candidate struct {
	Color argb.Color `json:"color" yaml:"color"`
	Score float64    `json:"score" yaml:"score"`
}

// Rank scores the quantized colours and returns the surviving candidates,
// highest score first. Equal scores keep the input order. The result is
// never empty: when nothing qualifies it holds opts.Fallback alone.
func Rank(colors []quantize.QuantizedColor, opts Options) []Candidate {
	total := 0
	for _, qc := range colors {
		total += qc.Population
	}

	type entry struct {
		color      argb.Color
		cam        *cam16.CAM16
		proportion float64
		excited    float64
	}

	entries := make([]entry, 0, len(colors))
	var hueProportions [360]float64

	// Accumulate each colour's share of the image into its hue bucket
	if total > 0 {
		for _, qc := range colors {
			cam := cam16.FromARGB(qc.Color)
			proportion := float64(qc.Population) / float64(total)
			bucket := mathutil.SanitizeDegreesInt(int(math.Round(cam.Hue)))
			hueProportions[bucket] += proportion
			entries = append(entries, entry{color: qc.Color, cam: cam, proportion: proportion})
		}
	}

	// Sum the buckets around each colour's hue
	for i := range entries {
		hue := int(math.Round(entries[i].cam.Hue))
		for offset := -opts.HueNeighbourhood; offset < opts.HueNeighbourhood; offset++ {
			entries[i].excited += hueProportions[mathutil.SanitizeDegreesInt(hue+offset)]
		}
	}

	candidates := make([]Candidate, 0, len(entries))
	hues := make([]float64, 0, len(entries))
	for _, e := range entries {
		if e.cam.Chroma < opts.CutoffChroma ||
			e.color.Lstar() < opts.CutoffTone ||
			e.excited < opts.CutoffExcitedProportion {
			continue
		}

		proportionScore := e.excited * 100.0 * opts.WeightProportion
		chromaWeight := opts.WeightChromaAbove
		if e.cam.Chroma < opts.TargetChroma {
			chromaWeight = opts.WeightChromaBelow
		}
		chromaScore := (e.cam.Chroma - opts.TargetChroma) * chromaWeight

		candidates = append(candidates, Candidate{Color: e.color, Score: proportionScore + chromaScore})
		hues = append(hues, e.cam.Hue)
	}

	// Sort indices so the hue of each candidate travels with it
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return candidates[order[i]].Score > candidates[order[j]].Score
	})

	ranked := make([]Candidate, 0, len(candidates))
	keptHues := make([]float64, 0, len(candidates))
	for _, idx := range order {
		duplicate := false
		for _, kept := range keptHues {
			if mathutil.DifferenceDegrees(hues[idx], kept) < opts.DedupeWindow {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		ranked = append(ranked, candidates[idx])
		keptHues = append(keptHues, hues[idx])
	}

	if len(ranked) == 0 {
		return []Candidate{{Color: opts.Fallback, Score: 0}}
	}
	return ranked
}

// Score returns the ranked colours without their scores. The result is
// never empty.
func Score(colors []quantize.QuantizedColor, opts Options) []argb.Color {
	ranked := Rank(colors, opts)
	out := make([]argb.Color, len(ranked))
	for i, c := range ranked {
		out[i] = c.Color
	}
	return out
}
