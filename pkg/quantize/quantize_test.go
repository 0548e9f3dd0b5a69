package quantize

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"reflect"
	"testing"

	"github.com/jmylchreest/tonal/pkg/argb"
)

func randomPixels(n int, seed int64) []argb.Color {
	rng := rand.New(rand.NewSource(seed))
	pixels := make([]argb.Color, n)
	for i := range pixels {
		pixels[i] = argb.FromRGB(uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)))
	}
	return pixels
}

func TestQuantizeErrors(t *testing.T) {
	opts := DefaultOptions()

	if _, err := Quantize(nil, opts); !errors.Is(err, ErrNoPixels) {
		t.Errorf("Quantize(nil) error = %v, want ErrNoPixels", err)
	}

	opts.MaxColors = 0
	if _, err := Quantize([]argb.Color{0xff000000}, opts); !errors.Is(err, ErrInvalidMaxColors) {
		t.Errorf("Quantize(MaxColors=0) error = %v, want ErrInvalidMaxColors", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "defaults", opts: DefaultOptions(), wantErr: false},
		{name: "zero colors", opts: Options{MaxColors: 0, MaxIterations: 10}, wantErr: true},
		{name: "zero iterations", opts: Options{MaxColors: 8, MaxIterations: 0}, wantErr: true},
		{name: "negative workers", opts: Options{MaxColors: 8, MaxIterations: 1, Workers: -1}, wantErr: true},
		{name: "sequential", opts: Options{MaxColors: 1, MaxIterations: 1, Workers: 0}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuantizeExactWhenFewColors(t *testing.T) {
	red := argb.Color(0xffff0000)
	green := argb.Color(0xff00ff00)
	blue := argb.Color(0xff0000ff)
	pixels := []argb.Color{green, red, red, blue, red, green}

	result, err := Quantize(pixels, DefaultOptions())
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	want := Result{
		{Color: red, Population: 3},
		{Color: green, Population: 2},
		{Color: blue, Population: 1},
	}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("Quantize() = %v, want %v", result, want)
	}
}

func TestQuantizeTiesFollowFirstAppearance(t *testing.T) {
	a := argb.Color(0xff112233)
	b := argb.Color(0xff445566)

	result, err := Quantize([]argb.Color{b, a, a, b}, DefaultOptions())
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if result[0].Color != b || result[1].Color != a {
		t.Errorf("Quantize() order = %v, want b then a", result.Colors())
	}
}

func TestQuantizeIgnoresAlpha(t *testing.T) {
	result, err := Quantize([]argb.Color{0x00ff0000, 0x80ff0000, 0xffff0000}, DefaultOptions())
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(result) != 1 || result[0].Color != 0xffff0000 || result[0].Population != 3 {
		t.Errorf("Quantize() = %v, want a single opaque red with population 3", result)
	}
}

func TestQuantizeCoverageAndBound(t *testing.T) {
	pixels := randomPixels(20000, 1)

	for _, k := range []int{1, 4, 16, 64} {
		opts := DefaultOptions()
		opts.MaxColors = k

		result, err := Quantize(pixels, opts)
		if err != nil {
			t.Fatalf("Quantize(k=%d) error = %v", k, err)
		}
		if len(result) == 0 || len(result) > k {
			t.Errorf("Quantize(k=%d) returned %d colours", k, len(result))
		}
		if total := result.Total(); total != len(pixels) {
			t.Errorf("Quantize(k=%d) total population = %d, want %d", k, total, len(pixels))
		}
		if len(result.Map()) != len(result) {
			t.Errorf("Quantize(k=%d) returned duplicate colours", k)
		}
		for i := 1; i < len(result); i++ {
			if result[i].Population > result[i-1].Population {
				t.Errorf("Quantize(k=%d) not ordered by population at %d", k, i)
			}
		}
	}
}

func TestQuantizeSeparatesClusters(t *testing.T) {
	pixels := make([]argb.Color, 0, 600)
	for i := 0; i < 300; i++ {
		pixels = append(pixels, argb.FromRGB(uint8(200+i%10), 10, 10))
	}
	for i := 0; i < 200; i++ {
		pixels = append(pixels, argb.FromRGB(10, 10, uint8(200+i%10)))
	}
	for i := 0; i < 100; i++ {
		pixels = append(pixels, argb.FromRGB(10, uint8(200+i%10), 10))
	}

	opts := DefaultOptions()
	opts.MaxColors = 3
	result, err := Quantize(pixels, opts)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("Quantize() returned %d colours, want 3", len(result))
	}

	if c := result[0].Color; result[0].Population != 300 || c.Red() < 190 {
		t.Errorf("first cluster = %s x%d, want red x300", c, result[0].Population)
	}
	if c := result[1].Color; result[1].Population != 200 || c.Blue() < 190 {
		t.Errorf("second cluster = %s x%d, want blue x200", c, result[1].Population)
	}
	if c := result[2].Color; result[2].Population != 100 || c.Green() < 190 {
		t.Errorf("third cluster = %s x%d, want green x100", c, result[2].Population)
	}
}

func TestQuantizeParallelMatchesSequential(t *testing.T) {
	// More distinct colours than the parallel threshold.
	pixels := make([]argb.Color, 0, 2*parallelThreshold)
	for i := 0; i < 2*parallelThreshold; i++ {
		pixels = append(pixels, argb.FromRGB(uint8(i), uint8(i>>8)*31, uint8(i*7)))
	}

	sequential := Options{MaxColors: 32, MaxIterations: 10, Workers: 1}
	parallel := Options{MaxColors: 32, MaxIterations: 10, Workers: 8}

	a, err := Quantize(pixels, sequential)
	if err != nil {
		t.Fatalf("sequential Quantize() error = %v", err)
	}
	b, err := Quantize(pixels, parallel)
	if err != nil {
		t.Fatalf("parallel Quantize() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parallel result differs from sequential:\n%v\n%v", a, b)
	}
}

func TestHistogram(t *testing.T) {
	h := NewHistogram([]argb.Color{0xff000001, 0xff000002, 0x00000001, 0xff000003, 0xff000002})

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if h.Total() != 5 {
		t.Errorf("Total() = %d, want 5", h.Total())
	}

	want := []QuantizedColor{
		{Color: 0xff000001, Population: 2},
		{Color: 0xff000002, Population: 2},
		{Color: 0xff000003, Population: 1},
	}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestMedianCut(t *testing.T) {
	pixels := []argb.Color{}
	for i := 0; i < 50; i++ {
		pixels = append(pixels, argb.FromRGB(uint8(i), 0, 0))
		pixels = append(pixels, argb.FromRGB(uint8(200+i), 0, 0))
	}
	h := NewHistogram(pixels)

	seeds := MedianCut(h, 2)
	if len(seeds) != 2 {
		t.Fatalf("MedianCut() returned %d seeds, want 2", len(seeds))
	}

	low, high := seeds[0], seeds[1]
	if low.Red() > high.Red() {
		low, high = high, low
	}
	if low.Red() != 25 || high.Red() != 225 {
		t.Errorf("MedianCut() seeds = %s, %s, want red 25 and 225", low, high)
	}

	if got := MedianCut(NewHistogram([]argb.Color{0xff101010}), 8); len(got) != 1 {
		t.Errorf("MedianCut() of a single colour returned %d seeds, want 1", len(got))
	}
	if got := MedianCut(h, 1000); len(got) != h.Len() {
		t.Errorf("MedianCut() with k above distinct colours returned %d seeds, want %d", len(got), h.Len())
	}
}

func TestSplitRange(t *testing.T) {
	covered := make([]int, 10)
	for worker := 0; worker < 3; worker++ {
		start, end := splitRange(10, 3, worker)
		for i := start; i < end; i++ {
			covered[i]++
		}
	}
	for i, c := range covered {
		if c != 1 {
			t.Errorf("index %d covered %d times", i, c)
		}
	}
}

func TestPixelsFromImage(t *testing.T) {
	t.Run("opaque pixels only", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
		img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 128})
		img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
		img.SetNRGBA(1, 1, color.NRGBA{A: 0})

		got := PixelsFromImage(img)
		want := []argb.Color{0xffff0000, 0xff0000ff}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("PixelsFromImage() = %v, want %v", got, want)
		}
	})

	t.Run("fully transparent", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
		}

		got := PixelsFromImage(img)
		if len(got) != 3 {
			t.Fatalf("PixelsFromImage() returned %d pixels, want 3", len(got))
		}
		for _, c := range got {
			if c != 0xff0a141e {
				t.Errorf("pixel = %s, want #0a141e", c)
			}
		}
	})

	t.Run("generic image", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(5, 5, 7, 6))
		img.Set(5, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})
		img.Set(6, 5, color.RGBA{R: 4, G: 5, B: 6, A: 255})

		got := PixelsFromImage(img)
		want := []argb.Color{0xff010203, 0xff040506}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("PixelsFromImage() = %v, want %v", got, want)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := PixelsFromImage(image.NewNRGBA(image.Rectangle{})); len(got) != 0 {
			t.Errorf("PixelsFromImage() = %v, want empty", got)
		}
	})
}

func TestSolidImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0x42, G: 0x85, B: 0xf4, A: 255})
		}
	}

	result, err := Quantize(PixelsFromImage(img), DefaultOptions())
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(result) != 1 || result[0].Color != 0xff4285f4 || result[0].Population != 256 {
		t.Errorf("Quantize() = %v, want one #4285f4 with population 256", result)
	}
}

func TestRefine(t *testing.T) {
	red := argb.Color(0xffff0000)
	blue := argb.Color(0xff0000ff)
	green := argb.Color(0xff00ff00)

	repeat := func(c argb.Color, n int) []argb.Color {
		out := make([]argb.Color, n)
		for i := range out {
			out[i] = c
		}
		return out
	}

	tests := []struct {
		name   string
		pixels []argb.Color
		seeds  []argb.Color
		want   Result
	}{
		{
			name:   "duplicate seeds drop the empty cluster",
			pixels: append(repeat(red, 3), repeat(blue, 2)...),
			seeds:  []argb.Color{red, red, blue},
			want:   Result{{Color: red, Population: 3}, {Color: blue, Population: 2}},
		},
		{
			name:   "seed moves to its cluster",
			pixels: append(repeat(red, 2), blue),
			seeds:  []argb.Color{0xffee1111, blue},
			want:   Result{{Color: red, Population: 2}, {Color: blue, Population: 1}},
		},
		{
			name:   "unused seed is dropped",
			pixels: append(repeat(blue, 4), red),
			seeds:  []argb.Color{red, green, blue},
			want:   Result{{Color: blue, Population: 4}, {Color: red, Population: 1}},
		},
		{
			name:   "empty histogram",
			pixels: nil,
			seeds:  []argb.Color{red},
			want:   nil,
		},
		{
			name:   "no seeds",
			pixels: []argb.Color{red},
			seeds:  nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refine(NewHistogram(tt.pixels), tt.seeds, DefaultOptions())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Refine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefineConservesPopulation(t *testing.T) {
	pixels := randomPixels(5000, 7)
	h := NewHistogram(pixels)
	seeds := MedianCut(h, 16)

	got := Refine(h, seeds, DefaultOptions())

	if got.Total() != len(pixels) {
		t.Errorf("Refine() total = %d, want %d", got.Total(), len(pixels))
	}
	if len(got) == 0 || len(got) > len(seeds) {
		t.Errorf("Refine() returned %d colours, want 1..%d", len(got), len(seeds))
	}
	if len(got.Map()) != len(got) {
		t.Errorf("Refine() returned duplicate colours: %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Population > got[i-1].Population {
			t.Errorf("Refine() not sorted by population at %d", i)
		}
	}
}

func TestRefineSingleSeedAbsorbsEverything(t *testing.T) {
	h := NewHistogram([]argb.Color{0xff000000, 0xffffffff, 0xff808080})

	got := Refine(h, []argb.Color{0xff404040}, DefaultOptions())
	if len(got) != 1 || got[0].Population != 3 {
		t.Errorf("Refine() = %v, want one colour with population 3", got)
	}
}

func TestCollectMergesEqualColours(t *testing.T) {
	red := argb.Color(0xffff0000)
	blue := argb.Color(0xff0000ff)
	h := NewHistogram([]argb.Color{red, red, blue})

	nearRed := red.Lab()
	nearRed.L += 1e-9
	centroids := []argb.Lab{red.Lab(), nearRed}

	got := collect(h, centroids, []int{0, 1})
	want := Result{{Color: red, Population: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collect() = %v, want %v", got, want)
	}
}

func TestNearestMatchesFullScan(t *testing.T) {
	centroids := make([]argb.Lab, 0, 24)
	for _, c := range randomPixels(24, 3) {
		centroids = append(centroids, c.Lab())
	}
	distances := centroidDistances(centroids)

	for _, c := range randomPixels(500, 11) {
		lab := c.Lab()
		want := nearest(lab, centroids, nil, -1)
		for previous := range centroids {
			if got := nearest(lab, centroids, distances, previous); got != want {
				t.Fatalf("nearest(%s, previous %d) = %d, want %d", c, previous, got, want)
			}
		}
	}
}
