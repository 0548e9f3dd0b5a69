// Package imagecache keeps downloaded images on disk so repeated runs
// against the same URL do not refetch it.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/tonal/internal/security"
	httputil "github.com/jmylchreest/tonal/internal/util/http"
)

// Options configures image caching behavior.
type Options struct {
	// Dir is the directory where images will be cached.
	// If empty, DefaultDir is used.
	Dir string

	// Refresh refetches the image even when a cached copy exists.
	Refresh bool

	// Fetch is passed through to the HTTP download.
	Fetch httputil.FetchOptions
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "tonal", "images"), nil
	}
	return filepath.Join(cacheDir, "tonal", "images"), nil
}

// Filename returns the deterministic cache filename for url: a SHA-256
// prefix plus the URL's extension, so compressed inputs keep their suffix.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.ContainsRune(ext, '/') {
		return name
	}
	return name + strings.ToLower(ext)
}

// Fetch returns the content of url, served from the cache when present.
// The returned path is the cached file.
func Fetch(ctx context.Context, url string, opts Options) ([]byte, string, error) {
	if !security.IsRemote(url) {
		return nil, "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		defaultDir, err := DefaultDir()
		if err != nil {
			return nil, "", err
		}
		dir = defaultDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, Filename(url))

	if !opts.Refresh {
		if data, err := os.ReadFile(path); err == nil { // #nosec G304 - Path derived from URL hash
			return data, path, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return nil, "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return data, path, nil
}
