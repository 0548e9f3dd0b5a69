package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserConfigDir = os.UserConfigDir
var osGetwd = os.Getwd

const (
	appName         = "tonal"
	configFileName  = "config.yaml"
	projectFileName = ".tonal.yaml"
)

type layer struct {
	path     func() (string, error)
	required bool
}

// Load builds the configuration by layering the defaults, the user file,
// the project file and finally explicitPath when it is not empty. Missing
// user and project files are skipped; a missing explicit file is an
// error. It returns the files that were applied, in order.
func Load(explicitPath string) (*Config, []string, error) {
	cfg := Default()
	var applied []string

	layers := []layer{
		{path: getUserConfigPath},
		{path: getProjectConfigPath},
	}
	if explicitPath != "" {
		layers = append(layers, layer{
			path:     func() (string, error) { return explicitPath, nil },
			required: true,
		})
	}

	for _, l := range layers {
		path, err := l.path()
		if err != nil {
			// The user and project locations are optional.
			continue
		}

		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) && !l.required {
				continue
			}
			return nil, applied, fmt.Errorf("failed to access config %s: %w", path, err)
		}

		if err := loadConfigFromFile(path, cfg); err != nil {
			return nil, applied, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		applied = append(applied, path)
	}

	return cfg, applied, nil
}

var getUserConfigPath = func() (string, error) {
	dir, err := osUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectFileName), nil
}

// UserConfigPath returns the location of the user configuration file.
func UserConfigPath() (string, error) {
	return getUserConfigPath()
}

// loadConfigFromFile decodes the YAML file at filePath over cfg. Keys the
// file omits keep their current values; unknown keys are rejected.
func loadConfigFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath) // #nosec G304 - Config path chosen by the user
	if err != nil {
		return err
	}
	return decode(data, cfg)
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
