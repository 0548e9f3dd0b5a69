// Package image loads source images for theme extraction from local files,
// directories and HTTP(S) URLs.
package image

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/bmp"    // Register BMP format
	_ "golang.org/x/image/tiff"   // Register TIFF format
	_ "golang.org/x/image/webp"   // Register WebP format

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tonal/internal/compression"
	"github.com/jmylchreest/tonal/internal/security"
	httputil "github.com/jmylchreest/tonal/internal/util/http"
	"github.com/jmylchreest/tonal/internal/util/imagecache"
)

// DefaultMaxDimension is the longest edge images are downscaled to before
// pixel extraction.
const DefaultMaxDimension = 512

// Loader loads and prepares images. The zero value is not usable; create
// one with NewLoader.
type Loader struct {
	logger        hclog.Logger
	maxDimension  int
	maxBytes      int64
	timeout       time.Duration
	scaler        Scaler
	cacheDir      string
	cache         bool
	allowInsecure bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger hclog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxDimension sets the longest edge after downscaling. Zero disables
// downscaling.
func WithMaxDimension(n int) Option {
	return func(l *Loader) {
		l.maxDimension = n
	}
}

// WithMaxBytes caps the size of file, download and decompressed data.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) {
		l.maxBytes = n
	}
}

// WithHTTPTimeout sets the timeout for remote images.
func WithHTTPTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithScaler sets the resampling kernel used for downscaling.
func WithScaler(s Scaler) Option {
	return func(l *Loader) {
		l.scaler = s
	}
}

// WithCache stores remote images under dir. An empty dir selects the
// user cache directory.
func WithCache(dir string) Option {
	return func(l *Loader) {
		l.cache = true
		l.cacheDir = dir
	}
}

// WithInsecureURLs skips the HTTPS and public host checks on remote
// images. Intended for tests against local servers.
func WithInsecureURLs() Option {
	return func(l *Loader) {
		l.allowInsecure = true
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		logger:       hclog.NewNullLogger(),
		maxDimension: DefaultMaxDimension,
		maxBytes:     security.DefaultMaxBytes,
		timeout:      httputil.DefaultTimeout,
		scaler:       ScalerBiLinear,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads, decodes and downscales the image at path. Path may be a
// file, a directory (a random supported image in it is used) or an
// HTTP(S) URL. Compressed files are decompressed transparently.
func (l *Loader) Load(ctx context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	resolved, err := ResolveImagePath(path)
	if err != nil {
		return nil, err
	}
	if resolved != path {
		l.logger.Debug("selected image from directory", "dir", path, "image", resolved)
	}

	var data []byte
	if security.IsRemote(resolved) {
		data, err = l.fetch(ctx, resolved)
	} else {
		data, err = l.readFile(resolved)
	}
	if err != nil {
		return nil, err
	}

	img, format, err := l.Decode(bytes.NewReader(data), resolved)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	l.logger.Debug("image loaded", "path", resolved, "format", format, "width", bounds.Dx(), "height", bounds.Dy())

	scaled := Downscale(img, l.maxDimension, l.scaler)
	if scaled != img {
		sb := scaled.Bounds()
		l.logger.Debug("image downscaled", "width", sb.Dx(), "height", sb.Dy())
	}
	return scaled, nil
}

// Decode decompresses r if needed and decodes it as an image. Name is used
// for compression detection by extension.
func (l *Loader) Decode(r io.Reader, name string) (image.Image, string, error) {
	decoded, compressed, err := compression.Open(r, name, l.maxBytes)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image data: %w", err)
	}
	if compressed != compression.None {
		l.logger.Debug("decompressing image", "path", name, "compression", compressed)
	}

	img, format, err := image.Decode(decoded)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, format, nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > l.maxBytes {
		return nil, fmt.Errorf("image file %s is %d bytes: %w", path, info.Size(), security.ErrSizeLimit)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if !l.allowInsecure {
		if err := security.ValidateHTTPURL(url); err != nil {
			return nil, fmt.Errorf("refusing to fetch image: %w", err)
		}
	}

	fetchOpts := httputil.FetchOptions{Timeout: l.timeout, MaxBytes: l.maxBytes}

	if l.cache {
		data, cached, err := imagecache.Fetch(ctx, url, imagecache.Options{Dir: l.cacheDir, Fetch: fetchOpts})
		if err != nil {
			return nil, err
		}
		l.logger.Debug("image cached", "url", url, "path", cached)
		return data, nil
	}

	l.logger.Debug("fetching image", "url", url)
	data, err := httputil.Fetch(ctx, url, fetchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return data, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".avif"}
}

// isImageFile checks if a file has a supported image extension, optionally
// followed by a compression suffix.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(compression.TrimExtension(path)))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages scans a directory and returns all valid image files.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// Stat the target so symlinked files count.
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}

		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}

	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		index := int(binary.LittleEndian.Uint64(buf[:]) % uint64(len(imagePaths)))
		return imagePaths[index], nil
	}

	return imagePaths[randomIndex.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file, a directory or a URL.
// Directories resolve to a random image inside them; files and URLs are
// returned as-is.
func ResolveImagePath(path string) (string, error) {
	if security.IsRemote(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("image file or directory not found: %s", path)
		}
		return "", fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return SelectRandomImage(imageFiles)
}
