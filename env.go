package config

import (
	"fmt"
	"os"
	"strings"

	env "github.com/caarlos0/env/v11"
)

// Env is a read-only snapshot of key/value pairs taken from the process
// environment. The snapshot is captured once at construction and never
// changes afterwards, even if the process environment is later mutated.
type Env struct {
	vars map[string]string
}

// NewEnv captures the current process environment.
func NewEnv() *Env {
	vars := make(map[string]string)
	for _, entry := range os.Environ() {
		if i := strings.IndexByte(entry, '='); i >= 0 {
			vars[entry[:i]] = entry[i+1:]
		}
	}
	return &Env{vars: vars}
}

// EnvFromMap builds a snapshot from an explicit map. Useful for tests and
// for resolving configuration against something other than the live
// environment.
func EnvFromMap(vars map[string]string) *Env {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return &Env{vars: copied}
}

// Raw returns the snapshot value for name. The second return reports whether
// the variable was present at capture time.
func (e *Env) Raw(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// StringOr returns the variable's value, or def when absent.
func (e *Env) StringOr(name, def string) string {
	if v, ok := e.vars[name]; ok {
		return v
	}
	return def
}

// IntOr returns the variable parsed as int64, or def when absent or not
// parsable.
func (e *Env) IntOr(name string, def int64) int64 {
	v, ok := e.vars[name]
	if !ok {
		return def
	}
	if i, ok := coerceInt(v); ok {
		return i
	}
	return def
}

// FloatOr returns the variable parsed as float64, or def when absent or not
// parsable.
func (e *Env) FloatOr(name string, def float64) float64 {
	v, ok := e.vars[name]
	if !ok {
		return def
	}
	if f, ok := coerceFloat(v); ok {
		return f
	}
	return def
}

// BoolOr returns the variable coerced to bool, or def when absent.
// Coercion follows the KindBool policy: "true"/"1" and "false"/"0" are
// canonical, any other value is truthy when non-empty.
func (e *Env) BoolOr(name string, def bool) bool {
	v, ok := e.vars[name]
	if !ok {
		return def
	}
	if b, ok := coerceBool(v); ok {
		return b
	}
	return def
}

// ParseInto populates target, a pointer to a struct carrying `env` tags, from
// the snapshot. prefix is prepended to every looked-up variable name.
func (e *Env) ParseInto(target any, prefix string) error {
	opts := env.Options{
		Environment: e.vars,
		Prefix:      prefix,
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("failed to parse environment into %T: %w", target, err)
	}
	return nil
}
