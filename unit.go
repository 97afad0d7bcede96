package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/mitchellh/mapstructure"
)

// Mapper is the single capability every configuration unit implements:
// producing a mapping from string keys to values (scalars, nested mappings,
// sequences). Named and inline units are dispatched through this interface
// without special-casing.
type Mapper interface {
	ToMapping() (map[string]any, error)
}

// MapperFunc adapts a plain function to the Mapper interface.
type MapperFunc func() (map[string]any, error)

// ToMapping invokes the function.
func (f MapperFunc) ToMapping() (map[string]any, error) { return f() }

// Unit couples a Mapper with the namespace key it contributes under and a
// human-readable origin used in bootstrap failure messages. Units are
// invoked exactly once, during bootstrap; their output is captured and
// treated as immutable from then on.
type Unit struct {
	name   string
	named  bool
	origin string
	mapper Mapper
}

// Namespace returns the lower-cased namespace key the unit contributes under.
func (u Unit) Namespace() string { return u.name }

// Origin describes where the unit came from, for diagnostics.
func (u Unit) Origin() string { return u.origin }

// Named builds a reusable unit with its own identity. The declared name is
// lower-cased to form the namespace key, so a unit named "Database"
// contributes under "database". Registering two named units with the same
// name is rejected by the registry.
func Named(name string, m Mapper) Unit {
	return Unit{
		name:   strings.ToLower(name),
		named:  true,
		origin: fmt.Sprintf("named unit %q", name),
		mapper: m,
	}
}

// Inline builds an anonymous, one-off unit from a function supplied at the
// call site. It has no identity of its own beyond the namespace it
// contributes under; several inline units may share a namespace, in which
// case discovery order decides colliding keys.
func Inline(namespace string, fn func() (map[string]any, error)) Unit {
	return Unit{
		name:   strings.ToLower(namespace),
		origin: fmt.Sprintf("inline unit for %q", namespace),
		mapper: MapperFunc(fn),
	}
}

// Static wraps a ready-made mapping as a unit.
func Static(namespace string, mapping map[string]any) Unit {
	return Unit{
		name:   strings.ToLower(namespace),
		origin: fmt.Sprintf("static unit for %q", namespace),
		mapper: MapperFunc(func() (map[string]any, error) {
			return mapping, nil
		}),
	}
}

// StructUnit builds a unit from one or more layers of the same struct type.
// Layers are consulted in order and the first layer providing a non-zero
// value for a field wins; nil layers are skipped. Field names map to keys via
// the `config` struct tag, falling back to the field name.
func StructUnit[T any](namespace string, layers ...*T) Unit {
	return Unit{
		name:   strings.ToLower(namespace),
		named:  true,
		origin: fmt.Sprintf("struct unit %q (%T)", namespace, *new(T)),
		mapper: MapperFunc(func() (map[string]any, error) {
			merged := new(T)
			for _, layer := range layers {
				if layer == nil {
					continue
				}
				if err := mergo.Merge(merged, layer); err != nil {
					return nil, fmt.Errorf("failed to merge struct layers: %w", err)
				}
			}
			return structToMapping(merged)
		}),
	}
}

// EnvUnit builds a unit that populates a copy of defaults from the supplied
// environment snapshot using `env` struct tags, then converts the result to a
// mapping. prefix is prepended to every looked-up variable name. Environment
// precedence is captured here, inside the unit body; the merge engine never
// re-applies environment values afterwards.
func EnvUnit[T any](namespace string, source *Env, prefix string, defaults T) Unit {
	return Unit{
		name:   strings.ToLower(namespace),
		named:  true,
		origin: fmt.Sprintf("env unit %q (prefix %q)", namespace, prefix),
		mapper: MapperFunc(func() (map[string]any, error) {
			cfg := defaults
			if err := source.ParseInto(&cfg, prefix); err != nil {
				return nil, err
			}
			return structToMapping(&cfg)
		}),
	}
}

// structToMapping converts a struct (or pointer to struct) into a nested
// map[string]any using `config` tags.
func structToMapping(v any) (map[string]any, error) {
	out := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "config",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create struct decoder: %w", err)
	}
	if err := decoder.Decode(v); err != nil {
		return nil, fmt.Errorf("failed to convert %T to mapping: %w", v, err)
	}
	return out, nil
}
