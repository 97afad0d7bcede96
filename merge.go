package config

// buildNamespace assembles the merged namespace from bootstrap defaults and
// captured unit outputs.
//
// Precedence, lowest to highest: bootstrap defaults, then unit outputs in
// discovery order. The merge is key-wise: nested mappings deep-merge, and a
// scalar/mapping shape collision is resolved by the later source winning
// entirely. The result is a structural copy of its inputs, so the namespace
// stays immutable regardless of what callers do with the originals.
func buildNamespace(defaults map[string]any, outputs []unitOutput) map[string]any {
	merged := make(map[string]any)
	if defaults != nil {
		merged = deepCopyMap(defaults)
	}

	for _, out := range outputs {
		slot, ok := merged[out.namespace].(map[string]any)
		if !ok {
			// Also replaces a scalar default standing at the namespace key.
			slot = make(map[string]any)
			merged[out.namespace] = slot
		}
		deepMerge(slot, out.mapping)
	}

	return merged
}

// defaultsToNested converts flat dot-path defaults into a nested mapping.
// Later entries at a colliding path win, matching setNestedValue semantics;
// iteration is ordered by the caller.
func defaultsToNested(flat []pathValue) map[string]any {
	nested := make(map[string]any)
	for _, pv := range flat {
		setNestedValue(nested, pv.path, pv.value)
	}
	return nested
}

// pathValue is a single dot-path default recorded by the builder. A slice of
// these keeps registration order, which a map would not.
type pathValue struct {
	path  string
	value any
}
