package config

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Resolver exposes the merged configuration namespace for dot-path lookups,
// with a runtime override store layered in front.
//
// The merged namespace is built once, at bootstrap, and never mutated
// afterwards, so reads against it need no locking. The override store is
// mutable for the lifetime of the process and is guarded by a read-write
// mutex. Missing keys and failed coercions never produce errors: lookups
// silently fall back to the caller-supplied default.
type Resolver struct {
	merged    map[string]any // immutable after bootstrap
	mu        sync.RWMutex   // guards overrides
	overrides map[string]any // dot-path -> override value
	log       zerolog.Logger
}

// newResolver wraps a finished merged namespace. Only the bootstrap path
// constructs resolvers, which makes lookups against a half-built namespace
// structurally impossible.
func newResolver(merged map[string]any, log zerolog.Logger) *Resolver {
	return &Resolver{
		merged:    merged,
		overrides: make(map[string]any),
		log:       log,
	}
}

// Get resolves a dot-path. The override store is consulted first by exact
// path match, then the merged namespace is traversed segment by segment.
// The second return reports whether the path resolved.
func (r *Resolver) Get(path string) (any, bool) {
	r.mu.RLock()
	if v, ok := r.overrides[path]; ok {
		r.mu.RUnlock()
		return v, true
	}
	r.mu.RUnlock()

	return lookupPath(r.merged, path)
}

// GetOr resolves a dot-path, returning def when the path does not resolve.
func (r *Resolver) GetOr(path string, def any) any {
	if v, ok := r.Get(path); ok {
		return v
	}
	return def
}

// Has reports whether a dot-path resolves through the override store or the
// merged namespace.
func (r *Resolver) Has(path string) bool {
	_, ok := r.Get(path)
	return ok
}

// Set records a runtime override at the given dot-path. Overrides take
// precedence over the merged namespace on every lookup and live for the
// process lifetime; the underlying namespace is never mutated.
func (r *Resolver) Set(path string, value any) error {
	if err := validatePath(path); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[path] = value
	return nil
}

// Remove deletes a runtime override. If no override was ever set at the
// path this is a no-op: a value present in the merged namespace stays
// visible, since the namespace itself is immutable.
func (r *Resolver) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overrides, path)
}

// HasOverride reports whether a runtime override is currently set at the
// exact path, ignoring the merged namespace.
func (r *Resolver) HasOverride(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.overrides[path]
	return ok
}

// CoerceOr resolves a dot-path and coerces the found value to kind.
// The default is returned when the path does not resolve or the coercion
// fails. It applies identically to values that are already typed: a stored
// bool coerces to KindBool as itself, the string "1" coerces to true.
func (r *Resolver) CoerceOr(path string, def any, kind Kind) any {
	v, ok := r.Get(path)
	if !ok {
		return def
	}
	coerced, ok := Coerce(v, kind)
	if !ok {
		return def
	}
	return coerced
}

// StringOr resolves a dot-path as a string, or def.
func (r *Resolver) StringOr(path, def string) string {
	v, ok := r.Get(path)
	if !ok {
		return def
	}
	if s, ok := coerceString(v); ok {
		return s
	}
	return def
}

// IntOr resolves a dot-path as an int, or def.
func (r *Resolver) IntOr(path string, def int) int {
	return int(r.Int64Or(path, int64(def)))
}

// Int64Or resolves a dot-path as an int64, or def.
func (r *Resolver) Int64Or(path string, def int64) int64 {
	v, ok := r.Get(path)
	if !ok {
		return def
	}
	if i, ok := coerceInt(v); ok {
		return i
	}
	return def
}

// Float64Or resolves a dot-path as a float64, or def.
func (r *Resolver) Float64Or(path string, def float64) float64 {
	v, ok := r.Get(path)
	if !ok {
		return def
	}
	if f, ok := coerceFloat(v); ok {
		return f
	}
	return def
}

// BoolOr resolves a dot-path as a bool, or def. String coercion follows the
// KindBool policy documented on coerceBool.
func (r *Resolver) BoolOr(path string, def bool) bool {
	v, ok := r.Get(path)
	if !ok {
		return def
	}
	if b, ok := coerceBool(v); ok {
		return b
	}
	return def
}

// DurationOr resolves a dot-path as a time.Duration, or def. Strings parse
// via time.ParseDuration; integer values are taken as nanoseconds.
func (r *Resolver) DurationOr(path string, def time.Duration) time.Duration {
	v, ok := r.Get(path)
	if !ok {
		return def
	}
	switch d := v.(type) {
	case time.Duration:
		return d
	case string:
		if parsed, err := time.ParseDuration(d); err == nil {
			return parsed
		}
		return def
	}
	if i, ok := coerceInt(v); ok {
		return time.Duration(i)
	}
	return def
}

// Snapshot returns a deep copy of the merged namespace with current runtime
// overrides applied. Mutating the result does not affect the resolver.
func (r *Resolver) Snapshot() map[string]any {
	out := deepCopyMap(r.merged)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for path, value := range r.overrides {
		setNestedValue(out, path, deepCopyValue(value))
	}
	return out
}
