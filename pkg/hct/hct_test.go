package hct

import (
	"errors"
	"math"
	"testing"

	"github.com/jmylchreest/tonal/internal/mathutil"
	"github.com/jmylchreest/tonal/pkg/argb"
)

func TestFromARGB(t *testing.T) {
	h := FromARGB(0xffff0000)

	if math.Abs(h.Hue()-27.41) > 0.01 {
		t.Errorf("Hue() = %v, want 27.41", h.Hue())
	}
	if math.Abs(h.Chroma()-113.36) > 0.01 {
		t.Errorf("Chroma() = %v, want 113.36", h.Chroma())
	}
	if math.Abs(h.Tone()-53.24) > 0.01 {
		t.Errorf("Tone() = %v, want 53.24", h.Tone())
	}
}

func TestFromARGBRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				c := argb.FromRGB(uint8(r), uint8(g), uint8(b))
				if got := FromARGB(c).ToARGB(); got != c {
					t.Fatalf("FromARGB(%s).ToARGB() = %s", c, got)
				}
			}
		}
	}
}

func TestNewMatchesTone(t *testing.T) {
	hues := []float64{0, 27, 90, 142, 209, 282, 330}
	chromas := []float64{0, 8, 16, 48, 120}

	for _, hue := range hues {
		for _, chroma := range chromas {
			for tone := 0.0; tone <= 100; tone += 5 {
				got := New(hue, chroma, tone)
				if lstar := got.ToARGB().Lstar(); math.Abs(lstar-tone) > 0.5 {
					t.Errorf("New(%v, %v, %v) L* = %.3f", hue, chroma, tone, lstar)
				}
			}
		}
	}
}

func TestNewPreservesReachableChroma(t *testing.T) {
	tests := []struct {
		hue, chroma float64
	}{
		{hue: 27, chroma: 16},
		{hue: 142, chroma: 16},
		{hue: 220, chroma: 16},
		{hue: 282, chroma: 16},
		{hue: 27, chroma: 48},
		{hue: 282, chroma: 48},
	}

	for _, tt := range tests {
		for tone := 30.0; tone <= 70; tone += 10 {
			got := New(tt.hue, tt.chroma, tone)
			if got.Chroma() > tt.chroma+2.5 {
				t.Errorf("New(%v, %v, %v) chroma = %.2f exceeds request", tt.hue, tt.chroma, tone, got.Chroma())
			}
			if tt.chroma <= 16 && math.Abs(got.Chroma()-tt.chroma) > 2.5 {
				t.Errorf("New(%v, %v, %v) chroma = %.2f, want about %v", tt.hue, tt.chroma, tone, got.Chroma(), tt.chroma)
			}
			if tt.chroma <= 16 && mathutil.DifferenceDegrees(got.Hue(), tt.hue) > 5 {
				t.Errorf("New(%v, %v, %v) hue = %.2f", tt.hue, tt.chroma, tone, got.Hue())
			}
		}
	}
}

func TestToneMonotonic(t *testing.T) {
	for _, hue := range []float64{0, 60, 120, 180, 240, 300} {
		previous := -1.0
		for tone := 0.0; tone <= 100; tone += 5 {
			lstar := New(hue, 48, tone).ToARGB().Lstar()
			if lstar <= previous {
				t.Errorf("hue %v: L* at tone %v = %.3f, not above %.3f", hue, tone, lstar, previous)
			}
			previous = lstar
		}
	}
}

func TestGamutClamp(t *testing.T) {
	got := New(0, 1000, 50)

	if math.Abs(got.Tone()-50) > 0.5 {
		t.Errorf("Tone() = %v, want 50", got.Tone())
	}
	if got.Chroma() < 30 || got.Chroma() > 1000 {
		t.Errorf("Chroma() = %v, want clamped into gamut", got.Chroma())
	}
}

func TestExtremeTones(t *testing.T) {
	if got := New(120, 50, 0).ToARGB(); got != 0xff000000 {
		t.Errorf("tone 0 = %s, want #000000", got)
	}
	if got := New(120, 50, 100).ToARGB(); got != 0xffffffff {
		t.Errorf("tone 100 = %s, want #ffffff", got)
	}
	if got := New(120, 50, -20).ToARGB(); got != 0xff000000 {
		t.Errorf("tone -20 = %s, want #000000", got)
	}
	if got := New(120, 50, 140).ToARGB(); got != 0xffffffff {
		t.Errorf("tone 140 = %s, want #ffffff", got)
	}
}

func TestAchromaticBelowOneChroma(t *testing.T) {
	got := New(200, 0.5, 50).ToARGB()
	if got.Red() != got.Green() || got.Green() != got.Blue() {
		t.Errorf("New(200, 0.5, 50) = %s, want grey", got)
	}
}

func TestSetters(t *testing.T) {
	h := New(27, 48, 50)

	h.SetTone(80)
	if math.Abs(h.Tone()-80) > 0.5 {
		t.Errorf("SetTone(80) tone = %v", h.Tone())
	}

	h.SetHue(282)
	if mathutil.DifferenceDegrees(h.Hue(), 282) > 5 {
		t.Errorf("SetHue(282) hue = %v", h.Hue())
	}
	if math.Abs(h.Tone()-80) > 0.5 {
		t.Errorf("SetHue(282) changed tone to %v", h.Tone())
	}

	h.SetChroma(0)
	if c := h.ToARGB(); c.Red() != c.Green() || c.Green() != c.Blue() {
		t.Errorf("SetChroma(0) = %s, want grey", c)
	}

	original := New(142, 30, 60)
	_ = original.WithTone(20)
	if math.Abs(original.Tone()-60) > 0.5 {
		t.Errorf("WithTone modified receiver: tone = %v", original.Tone())
	}
}

func TestNegativeHueIsSanitized(t *testing.T) {
	a := New(-90, 30, 50).ToARGB()
	b := New(270, 30, 50).ToARGB()
	if a != b {
		t.Errorf("New(-90) = %s, New(270) = %s, want equal", a, b)
	}
}

func TestMaximumChroma(t *testing.T) {
	h := New(27, 10, 53)
	maxChroma := h.MaximumChroma()
	if maxChroma < 60 {
		t.Errorf("MaximumChroma() = %v, want well above the current chroma", maxChroma)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name              string
		hue, chroma, tone float64
		wantErr           error
	}{
		{name: "valid", hue: 10, chroma: 20, tone: 30},
		{name: "nan hue", hue: math.NaN(), chroma: 20, tone: 30, wantErr: ErrNotFinite},
		{name: "infinite tone", hue: 10, chroma: 20, tone: math.Inf(1), wantErr: ErrNotFinite},
		{name: "negative chroma", hue: 10, chroma: -1, tone: 30, wantErr: ErrNegativeChroma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.hue, tt.chroma, tt.tone)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestZeroValueIsOpaqueBlack(t *testing.T) {
	var h HCT
	if got := h.ToARGB(); got != 0xff000000 {
		t.Errorf("HCT{}.ToARGB() = %#08x, want 0xff000000", uint32(got))
	}
	if _, _, _, a := h.RGBA(); a != 0xffff {
		t.Errorf("HCT{}.RGBA() alpha = %#x, want 0xffff", a)
	}
}
