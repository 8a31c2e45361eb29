// File: scan.go
package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the effective configuration under a dotted base path into
// the target struct or map. The target must be a non-nil pointer. Keys
// map to fields via the `config` struct tag; string values are weakly
// converted to the target field types, with hooks for time.Duration and
// comma-separated slices.
func (m *Manager) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	for key, value := range m.ConfigurationMap() {
		setNestedValue(nested, key, value)
	}

	sectionData := navigateToPath(nested, basePath)
	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		if sectionData == nil {
			sectionMap = make(map[string]any) // Empty section
		} else {
			return fmt.Errorf("configuration path %q refers to non-map value (type %T)", basePath, sectionData)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to scan section %q into %T: %w", basePath, target, err)
	}

	return nil
}
