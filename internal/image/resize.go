package image

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Scaler names a resampling kernel.
type Scaler string

const (
	ScalerNearest    Scaler = "nearest"
	ScalerBiLinear   Scaler = "bilinear"
	ScalerCatmullRom Scaler = "catmullrom"
)

// ParseScaler converts a string into a Scaler.
func ParseScaler(s string) (Scaler, error) {
	switch sc := Scaler(strings.ToLower(strings.TrimSpace(s))); sc {
	case "":
		return ScalerBiLinear, nil
	case ScalerNearest, ScalerBiLinear, ScalerCatmullRom:
		return sc, nil
	default:
		return "", fmt.Errorf("unknown scaler %q (valid: %s, %s, %s)", s, ScalerNearest, ScalerBiLinear, ScalerCatmullRom)
	}
}

func (s Scaler) interpolator() draw.Interpolator {
	switch s {
	case ScalerNearest:
		return draw.NearestNeighbor
	case ScalerCatmullRom:
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}

// FitDimensions returns the size of a w by h image scaled so its longest
// edge is at most maxDim, preserving aspect ratio. Each edge is at least 1.
func FitDimensions(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}

// Downscale shrinks img so its longest edge is at most maxDim. Images
// that already fit, and maxDim <= 0, return img unchanged.
func Downscale(img image.Image, maxDim int, scaler Scaler) image.Image {
	b := img.Bounds()
	w, h := FitDimensions(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	scaler.interpolator().Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
