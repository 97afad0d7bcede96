package config

import "strings"

// flattenMap converts a nested map[string]any to a flat map[string]any with
// dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

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
			flat[path] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate maps as needed. A non-map value standing where an
// intermediate map is needed is replaced by a new map.
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

// lookupPath traverses a nested map segment by segment. It returns false when
// any segment is missing or an intermediate value is not a map.
func lookupPath(nested map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = nested

	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}

	return current, true
}

// deepMerge merges src into dst key-wise. Nested maps merge recursively;
// on any other collision, including scalar vs map shape mismatch, the src
// value replaces the dst value entirely. src values are deep-copied so later
// mutation of a source cannot leak into dst.
func deepMerge(dst, src map[string]any) {
	for key, srcVal := range src {
		if srcMap, srcIsMap := srcVal.(map[string]any); srcIsMap {
			if dstMap, dstIsMap := dst[key].(map[string]any); dstIsMap {
				deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = deepCopyValue(srcVal)
	}
}

// deepCopyMap returns a structural copy of a nested map.
func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = deepCopyValue(value)
	}
	return out
}

// deepCopyValue copies maps and slices recursively; scalars pass through.
func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = deepCopyValue(elem)
		}
		return out
	default:
		return value
	}
}

// isValidKeySegment checks if a single path segment is a valid bare key:
// ASCII letters, digits, underscores, and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'

		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// validatePath checks that every segment of a dot-path is a valid key segment.
func validatePath(path string) error {
	if path == "" {
		return ErrInvalidPath
	}
	for _, segment := range strings.Split(path, ".") {
		if !isValidKeySegment(segment) {
			return ErrInvalidPath
		}
	}
	return nil
}
