package theme

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
	"github.com/jmylchreest/tonal/pkg/hct"
	"github.com/jmylchreest/tonal/pkg/palette"
	"github.com/jmylchreest/tonal/pkg/quantize"
)

func TestFromSourceColor(t *testing.T) {
	source := argb.MustFromHex("#4285f4")
	th := FromSourceColor(source)

	if th.Source != source {
		t.Errorf("Source = %s, want %s", th.Source, source)
	}
	if th.Variant != VariantTonalSpot {
		t.Errorf("Variant = %q, want %q", th.Variant, VariantTonalSpot)
	}

	primary := hct.FromARGB(th.Schemes.Light.Primary)
	sourceHue := hct.FromARGB(source).Hue()
	if d := mathutil.DifferenceDegrees(primary.Hue(), sourceHue); d > 5 {
		t.Errorf("light primary hue = %.2f, source hue = %.2f (diff %.2f)", primary.Hue(), sourceHue, d)
	}
	if math.Abs(primary.Tone()-40) > 0.5 {
		t.Errorf("light primary tone = %.2f, want 40", primary.Tone())
	}

	darkPrimary := hct.FromARGB(th.Schemes.Dark.Primary)
	if math.Abs(darkPrimary.Tone()-80) > 0.5 {
		t.Errorf("dark primary tone = %.2f, want 80", darkPrimary.Tone())
	}

	want := palette.NewCorePalette(source)
	if *th.Palettes != *want {
		t.Errorf("Palettes = %+v, want %+v", th.Palettes, want)
	}
	if len(th.CustomColors) != 0 {
		t.Errorf("CustomColors = %v, want none", th.CustomColors)
	}
}

func TestContentVariant(t *testing.T) {
	source := argb.Color(0xff4285f4)
	th := NewBuilder().WithVariant(VariantContent).Build(source)

	if *th.Palettes != *palette.NewContentCorePalette(source) {
		t.Errorf("content palettes do not match NewContentCorePalette")
	}
	if th.Variant != VariantContent {
		t.Errorf("Variant = %q, want %q", th.Variant, VariantContent)
	}
}

func TestCustomColors(t *testing.T) {
	source := argb.Color(0xff4285f4)
	custom := []CustomColor{
		{Name: "brand", Value: 0xffff0000, Blend: true},
		{Name: "raw", Value: 0xffff0000, Blend: false},
	}

	th := FromSourceColor(source, custom...)
	if len(th.CustomColors) != 2 {
		t.Fatalf("CustomColors has %d entries, want 2", len(th.CustomColors))
	}

	blended := th.CustomColors[0]
	raw := th.CustomColors[1]

	if raw.Value != 0xffff0000 {
		t.Errorf("unblended value = %s, want #ff0000", raw.Value)
	}
	if blended.Value == raw.Value {
		t.Errorf("blended value = %s, want it harmonized away from #ff0000", blended.Value)
	}
	if blended.Color.Name != "brand" {
		t.Errorf("blended name = %q, want brand", blended.Color.Name)
	}

	tones := []struct {
		name string
		c    argb.Color
		want float64
	}{
		{"light color", raw.Light.Color, 40},
		{"light onColor", raw.Light.OnColor, 100},
		{"light colorContainer", raw.Light.ColorContainer, 90},
		{"light onColorContainer", raw.Light.OnColorContainer, 10},
		{"dark color", raw.Dark.Color, 80},
		{"dark onColor", raw.Dark.OnColor, 20},
		{"dark colorContainer", raw.Dark.ColorContainer, 30},
		{"dark onColorContainer", raw.Dark.OnColorContainer, 90},
	}
	for _, tt := range tones {
		if math.Abs(tt.c.Lstar()-tt.want) > 0.5 {
			t.Errorf("%s L* = %.2f, want %v", tt.name, tt.c.Lstar(), tt.want)
		}
	}
}

func TestFromImageNoPixels(t *testing.T) {
	_, err := FromImage(nil)
	if !errors.Is(err, ErrNoPixels) {
		t.Errorf("FromImage(nil) error = %v, want ErrNoPixels", err)
	}
	if !errors.Is(err, quantize.ErrNoPixels) {
		t.Errorf("FromImage(nil) error = %v, want it to wrap quantize.ErrNoPixels", err)
	}
}

func solidImage(c color.NRGBA, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSolidImage(t *testing.T) {
	img := solidImage(color.NRGBA{R: 0x42, G: 0x85, B: 0xf4, A: 0xff}, 32, 32)

	source, err := SourceColorFromImage(img)
	if err != nil {
		t.Fatalf("SourceColorFromImage() error = %v", err)
	}
	if source != 0xff4285f4 {
		t.Errorf("SourceColorFromImage() = %s, want #4285f4", source)
	}

	th, err := NewBuilder().BuildFromImage(img)
	if err != nil {
		t.Fatalf("BuildFromImage() error = %v", err)
	}
	if th.Source != source {
		t.Errorf("theme source = %s, want %s", th.Source, source)
	}
}

func TestGreyImageFallsBack(t *testing.T) {
	img := solidImage(color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, 8, 8)

	source, err := SourceColorFromImage(img)
	if err != nil {
		t.Fatalf("SourceColorFromImage() error = %v", err)
	}
	if source != 0xff4285f4 {
		t.Errorf("SourceColorFromImage() = %s, want fallback #4285f4", source)
	}
}

func TestFromImagePicksDominantHue(t *testing.T) {
	pixels := make([]argb.Color, 0, 1000)
	for i := 0; i < 700; i++ {
		pixels = append(pixels, argb.FromRGB(0x1b, 0x5e, uint8(0x20+i%8)))
	}
	for i := 0; i < 300; i++ {
		pixels = append(pixels, argb.FromRGB(uint8(0xd0+i%8), 0x30, 0x30))
	}

	opts := quantize.DefaultOptions()
	opts.MaxColors = 4
	th, err := NewBuilder().WithQuantizeOptions(opts).BuildFromPixels(pixels)
	if err != nil {
		t.Fatalf("BuildFromPixels() error = %v", err)
	}

	greenHue := hct.FromARGB(argb.FromRGB(0x1b, 0x5e, 0x20)).Hue()
	if d := mathutil.DifferenceDegrees(hct.FromARGB(th.Source).Hue(), greenHue); d > 10 {
		t.Errorf("source %s hue is %.2f degrees from the dominant green", th.Source, d)
	}
}

func TestCandidates(t *testing.T) {
	pixels := []argb.Color{0xffd32f2f, 0xffd32f2f, 0xff1976d2}

	candidates, err := NewBuilder().Candidates(pixels)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(candidates) != 2 || candidates[0].Color != 0xffd32f2f {
		t.Errorf("Candidates() = %v, want red first of two", candidates)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "", want: VariantTonalSpot},
		{in: "tonal", want: VariantTonalSpot},
		{in: "Content", want: VariantContent},
		{in: "vibrant", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThemeJSON(t *testing.T) {
	th := FromSourceColor(0xff4285f4, CustomColor{Name: "brand", Value: 0xff00ff00, Blend: true})

	data, err := json.Marshal(th)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	for _, key := range []string{"source", "variant", "schemes", "palettes", "customColors"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("theme JSON missing %q", key)
		}
	}
	if string(doc["source"]) != `"#4285f4"` {
		t.Errorf("source = %s, want \"#4285f4\"", doc["source"])
	}
}
