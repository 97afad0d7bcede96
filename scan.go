package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the configuration subtree under basePath into target, which
// must be a non-nil pointer to a struct or map. An empty basePath decodes the
// whole namespace. Runtime overrides are applied before decoding. Field names
// map through the `config` struct tag.
//
// Unlike path lookups, Scan returns an error when basePath resolves to a
// non-mapping value, since there is no sensible way to decode a scalar into
// a struct. A basePath that does not resolve at all decodes an empty mapping,
// leaving the target's existing values in place as defaults.
func (r *Resolver) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	snapshot := r.Snapshot()

	var section any = snapshot
	if basePath = strings.TrimSuffix(basePath, "."); basePath != "" {
		if found, ok := lookupPath(snapshot, basePath); ok {
			section = found
		} else {
			section = map[string]any{}
		}
	}

	sectionMap, ok := section.(map[string]any)
	if !ok {
		return fmt.Errorf("configuration path %q refers to a non-mapping value of type %T", basePath, section)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook:       scanDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to decode section %q into %T: %w", basePath, target, err)
	}

	return nil
}

// scanDecodeHook composes the conversions applied during Scan.
func scanDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}
