// Package compression transparently decompresses gzip, bzip2 and xz
// encoded image data.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/tonal/internal/security"
	"github.com/ulikunitz/xz"
)

// Format identifies a compression encoding.
type Format string

const (
	// None means the data is not compressed.
	None  Format = ""
	Gzip  Format = "gzip"
	Bzip2 Format = "bzip2"
	Xz    Format = "xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// extensions maps file suffixes to formats.
var extensions = map[string]Format{
	".gz":   Gzip,
	".gzip": Gzip,
	".bz2":  Bzip2,
	".xz":   Xz,
}

// Detect identifies the compression of data from its leading bytes,
// falling back to the extension of name.
func Detect(name string, header []byte) Format {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	case bytes.HasPrefix(header, xzMagic):
		return Xz
	case bytes.HasPrefix(header, bzip2Magic):
		return Bzip2
	}
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// TrimExtension removes a recognised compression suffix from name, so
// "wall.png.xz" becomes "wall.png".
func TrimExtension(name string) string {
	ext := filepath.Ext(name)
	if _, ok := extensions[strings.ToLower(ext)]; ok {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// NewReader wraps r in a decoder for format. The decoded stream is capped
// at maxBytes; a value <= 0 selects security.DefaultMaxBytes.
func NewReader(r io.Reader, format Format, maxBytes int64) (io.Reader, error) {
	if maxBytes <= 0 {
		maxBytes = security.DefaultMaxBytes
	}

	var decoded io.Reader
	switch format {
	case None:
		decoded = r
	case Gzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		decoded = gzr
	case Bzip2:
		decoded = bzip2.NewReader(r)
	case Xz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		decoded = xzr
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}

	return security.NewLimitedReader(decoded, maxBytes), nil
}

// Open sniffs r and returns a reader over its decompressed content along
// with the detected format. Uncompressed data passes through unchanged.
func Open(r io.Reader, name string, maxBytes int64) (io.Reader, Format, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, None, fmt.Errorf("failed to read header: %w", err)
	}

	format := Detect(name, header)
	decoded, err := NewReader(br, format, maxBytes)
	if err != nil {
		return nil, format, err
	}
	return decoded, format, nil
}

// Decompress decodes data in memory. See Open.
func Decompress(data []byte, name string, maxBytes int64) ([]byte, Format, error) {
	r, format, err := Open(bytes.NewReader(data), name, maxBytes)
	if err != nil {
		return nil, format, err
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s data: %w", format, err)
	}
	return out, format, nil
}
