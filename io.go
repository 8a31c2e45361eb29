// File: io.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFileValues reads a TOML, JSON, or YAML file and returns its
// contents as a flat map with dot-notation keys and string values,
// suitable for seeding a source's base layer. The format is detected
// from the file extension first, then from the content. A missing file
// yields ErrConfigNotFound.
func LoadFileValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownFormat, path)
		}
	}

	nested := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&nested); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
		}
	}

	return flattenMap(normalizeNumbers(nested), ""), nil
}

// normalizeNumbers rewrites json.Number leaves into the int64/float64
// scalars TOML and YAML produce, so stringification renders the same
// document identically across formats.
func normalizeNumbers(nested map[string]any) map[string]any {
	for k, v := range nested {
		switch t := v.(type) {
		case json.Number:
			if i, err := t.Int64(); err == nil {
				nested[k] = i
			} else if f, err := t.Float64(); err == nil {
				nested[k] = f
			} else {
				nested[k] = t.String()
			}
		case map[string]any:
			nested[k] = normalizeNumbers(t)
		}
	}
	return nested
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	// Try TOML last
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
