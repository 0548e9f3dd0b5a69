package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

// Extension is the suffix of templates in the user template directory.
const Extension = ".tmpl"

// For mocking in tests
var osUserConfigDir = os.UserConfigDir

// Loader finds templates by path or by name in a template directory.
type Loader struct {
	dir string
}

// NewLoader returns a loader for dir, or for DefaultDir when dir is empty.
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir, _ = DefaultDir()
	}
	return &Loader{dir: dir}
}

// DefaultDir returns the user template directory.
func DefaultDir() (string, error) {
	base, err := osUserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(base, "tonal", "templates"), nil
}

// Dir returns the template directory of l.
func (l *Loader) Dir() string {
	return l.dir
}

// Resolve returns the file a template reference points at. A reference
// containing a path separator or naming an existing file is used as a path;
// anything else is looked up in the template directory, with and without
// Extension.
func (l *Loader) Resolve(ref string) (string, error) {
	if strings.ContainsRune(ref, os.PathSeparator) {
		return ref, nil
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return ref, nil
	}

	if l.dir == "" {
		return "", fmt.Errorf("template %q not found", ref)
	}
	for _, name := range []string{ref, ref + Extension} {
		path := filepath.Join(l.dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("template %q not found in %s", ref, l.dir)
}

// Load resolves and parses a template reference.
func (l *Loader) Load(ref string) (*template.Template, string, error) {
	path, err := l.Resolve(ref)
	if err != nil {
		return nil, "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 - Template path chosen by the user
	if err != nil {
		return nil, path, fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := Parse(filepath.Base(path), content)
	if err != nil {
		return nil, path, err
	}
	return tmpl, path, nil
}

// List returns the names of the templates in the template directory,
// without Extension, sorted. A missing directory yields no templates.
func (l *Loader) List() ([]string, error) {
	if l.dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}
