package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Quick bootstraps a resolver from the given units with no defaults and no
// validators. This is the shortest path for applications that build their
// units up front.
func Quick(units ...Unit) (*Resolver, error) {
	b := NewBuilder()
	for _, u := range units {
		b.WithUnit(u)
	}
	return b.Build()
}

// MustQuick is like Quick but panics on error.
func MustQuick(units ...Unit) *Resolver {
	resolver, err := Quick(units...)
	if err != nil {
		panic(fmt.Sprintf("config bootstrap failed: %v", err))
	}
	return resolver
}

// Debug returns a formatted listing of every resolvable path, its value, and
// whether it comes from a runtime override or the merged namespace. Paths are
// sorted for stable output.
func (r *Resolver) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")

	flat := flattenMap(r.merged, "")

	r.mu.RLock()
	overrides := make(map[string]any, len(r.overrides))
	for path, value := range r.overrides {
		overrides[path] = value
	}
	r.mu.RUnlock()

	paths := make([]string, 0, len(flat)+len(overrides))
	for path := range flat {
		paths = append(paths, path)
	}
	for path := range overrides {
		if _, ok := flat[path]; !ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	for _, path := range paths {
		if value, ok := overrides[path]; ok {
			b.WriteString(fmt.Sprintf("  %s: %v (override)\n", path, value))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %v\n", path, flat[path]))
	}

	return b.String()
}

// Dump writes the current configuration view, overrides applied, to w in
// TOML format. It is a read-only export; overrides are never persisted as a
// configuration source.
func (r *Resolver) Dump(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(r.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return nil
}
