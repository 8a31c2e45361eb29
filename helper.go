// File: helper.go
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// flattenMap converts a nested map[string]any to a flat map with
// dot-notation keys and stringified leaf values.
func flattenMap(nested map[string]any, prefix string) map[string]string {
	flat := make(map[string]string)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = stringifyValue(value)
		}
	}

	return flat
}

// stringifyValue renders a parsed scalar as its configuration string.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		// Render integral floats without the trailing ".0" JSON/YAML
		// parsers introduce.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate maps as needed. A non-map segment in the way is
// overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if !exists {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
			continue
		}

		if nextMap, isMap := next.(map[string]any); isMap {
			current = nextMap
		} else {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
		}
	}

	current[segments[len(segments)-1]] = value
}

// navigateToPath traverses a nested map to reach the specified dotted
// path, returning nil when the path does not exist.
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}

	return current
}
