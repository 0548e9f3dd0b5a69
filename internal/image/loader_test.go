package image

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/tonal/internal/security"
)

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

var blue = color.NRGBA{R: 0x42, G: 0x85, B: 0xf4, A: 0xff}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	pngData := encodePNG(t, 40, 20, blue)
	plain := writeFile(t, dir, "wall.png", pngData)
	compressed := writeFile(t, dir, "wall.png.gz", gzipped(t, pngData))

	tests := []struct {
		name  string
		path  string
		opts  []Option
		wantW int
		wantH int
	}{
		{name: "png", path: plain, wantW: 40, wantH: 20},
		{name: "gzip png", path: compressed, wantW: 40, wantH: 20},
		{name: "downscaled", path: plain, opts: []Option{WithMaxDimension(10)}, wantW: 10, wantH: 5},
		{name: "downscale disabled", path: plain, opts: []Option{WithMaxDimension(0)}, wantW: 40, wantH: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewLoader(tt.opts...).Load(context.Background(), tt.path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Load() size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			r, g, bl, _ := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA()
			if uint8(r>>8) != blue.R || uint8(g>>8) != blue.G || uint8(bl>>8) != blue.B {
				t.Errorf("centre pixel = %02x%02x%02x, want 4285f4", r>>8, g>>8, bl>>8)
			}
		})
	}
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := writeFile(t, dir, "notes.png", []byte("definitely not a png"))
	big := writeFile(t, dir, "big.png", encodePNG(t, 16, 16, blue))

	tests := []struct {
		name    string
		path    string
		opts    []Option
		wantErr error
	}{
		{name: "empty path", path: ""},
		{name: "missing", path: filepath.Join(dir, "missing.png")},
		{name: "undecodable", path: notImage},
		{name: "empty directory", path: t.TempDir()},
		{name: "too large", path: big, opts: []Option{WithMaxBytes(8)}, wantErr: security.ErrSizeLimit},
		{name: "plain http refused", path: "http://example.com/wall.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(tt.opts...).Load(context.Background(), tt.path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoaderDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.txt", []byte("skip me"))
	want := writeFile(t, dir, "only.png", encodePNG(t, 4, 4, blue))

	files, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	if len(files) != 1 || files[0] != want {
		t.Errorf("ScanDirectoryForImages() = %v, want [%s]", files, want)
	}

	img, err := NewLoader().Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load(dir) error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("Load(dir) width = %d, want 4", img.Bounds().Dx())
	}
}

func TestLoaderURL(t *testing.T) {
	pngData := encodePNG(t, 8, 8, blue)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	url := srv.URL + "/wall.png"

	t.Run("direct", func(t *testing.T) {
		img, err := NewLoader(WithInsecureURLs()).Load(context.Background(), url)
		if err != nil {
			t.Fatalf("Load(url) error = %v", err)
		}
		if img.Bounds().Dx() != 8 {
			t.Errorf("Load(url) width = %d, want 8", img.Bounds().Dx())
		}
	})

	t.Run("cached", func(t *testing.T) {
		cacheDir := t.TempDir()
		if _, err := NewLoader(WithInsecureURLs(), WithCache(cacheDir)).Load(context.Background(), url); err != nil {
			t.Fatalf("Load(url) error = %v", err)
		}
		entries, err := os.ReadDir(cacheDir)
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("cache holds %d files, want 1", len(entries))
		}
	})

	t.Run("local server refused without opt-in", func(t *testing.T) {
		if _, err := NewLoader().Load(context.Background(), url); err == nil {
			t.Error("Load(url) expected error for local plain-http URL")
		}
	})
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"wall.png", true},
		{"wall.JPEG", true},
		{"wall.avif", true},
		{"wall.tiff", true},
		{"wall.png.xz", true},
		{"wall.txt", false},
		{"wall.gz", false},
	}

	for _, tt := range tests {
		if got := isImageFile(tt.name); got != tt.want {
			t.Errorf("isImageFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSelectRandomImage(t *testing.T) {
	if _, err := SelectRandomImage(nil); err == nil {
		t.Error("SelectRandomImage(nil) expected error")
	}

	paths := []string{"a.png", "b.png"}
	got, err := SelectRandomImage(paths)
	if err != nil {
		t.Fatalf("SelectRandomImage() error = %v", err)
	}
	if got != "a.png" && got != "b.png" {
		t.Errorf("SelectRandomImage() = %q, not one of %v", got, paths)
	}
}
