package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ValidatorFunc validates a freshly bootstrapped Resolver. It runs after the
// merge completes and before Build returns; a non-nil error aborts bootstrap.
type ValidatorFunc func(r *Resolver) error

// Builder assembles a Resolver: it accumulates bootstrap defaults and
// configuration units, then performs the one-shot bootstrap in Build.
// Methods record the first error encountered and Build reports it, so call
// chains stay uninterrupted.
type Builder struct {
	registry   *Registry
	defaults   []pathValue
	log        zerolog.Logger
	validators []ValidatorFunc
	err        error
}

// NewBuilder creates a builder with an empty registry and logging disabled.
func NewBuilder() *Builder {
	return &Builder{
		registry: NewRegistry(),
		log:      zerolog.Nop(),
	}
}

// WithLogger installs the logger used for bootstrap diagnostics. Lookup
// fallbacks after bootstrap never log.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.log = log
	b.registry.SetLogger(log)
	return b
}

// WithDefault records a built-in bootstrap default at a dot-path. Defaults
// sit below all unit output in precedence.
func (b *Builder) WithDefault(path string, value any) *Builder {
	if b.err == nil {
		if err := validatePath(path); err != nil {
			b.err = fmt.Errorf("default %q: %w", path, err)
			return b
		}
	}
	b.defaults = append(b.defaults, pathValue{path: path, value: value})
	return b
}

// WithUnit appends a unit to the discovery sequence.
func (b *Builder) WithUnit(u Unit) *Builder {
	if b.err == nil {
		b.err = b.registry.Add(u)
	}
	return b
}

// WithInline appends an anonymous unit supplied at the call site.
func (b *Builder) WithInline(namespace string, fn func() (map[string]any, error)) *Builder {
	return b.WithUnit(Inline(namespace, fn))
}

// WithStatic appends a unit wrapping a ready-made mapping.
func (b *Builder) WithStatic(namespace string, mapping map[string]any) *Builder {
	return b.WithUnit(Static(namespace, mapping))
}

// WithUnitDir scans directories for file-backed units. Discovery happens at
// call time so the total unit order matches the builder call order.
func (b *Builder) WithUnitDir(dirs ...string) *Builder {
	if b.err == nil {
		b.err = b.registry.DiscoverDir(dirs...)
	}
	return b
}

// WithValidator adds a validation function run at the end of bootstrap.
// Validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build runs the bootstrap: it invokes every unit exactly once, merges the
// outputs over the defaults, and wraps the result in a Resolver. Any unit or
// discovery failure is fatal; bootstrap either completes or the resolver does
// not exist.
func (b *Builder) Build() (*Resolver, error) {
	if b.err != nil {
		return nil, b.err
	}

	outputs, err := b.registry.InvokeAll()
	if err != nil {
		return nil, err
	}

	merged := buildNamespace(defaultsToNested(b.defaults), outputs)
	resolver := newResolver(merged, b.log)

	for _, validator := range b.validators {
		if err := validator(resolver); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	b.log.Debug().Int("units", len(outputs)).Int("namespaces", len(merged)).Msg("bootstrap complete")
	return resolver, nil
}

// MustBuild is like Build but panics on error. Suitable for program startup
// where a configuration failure must stop the process.
func (b *Builder) MustBuild() *Resolver {
	resolver, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config bootstrap failed: %v", err))
	}
	return resolver
}

// BuildAndScan builds the resolver and decodes the subtree under basePath
// into target in one step.
func (b *Builder) BuildAndScan(basePath string, target any) (*Resolver, error) {
	resolver, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := resolver.Scan(basePath, target); err != nil {
		return nil, fmt.Errorf("failed to scan bootstrapped config: %w", err)
	}
	return resolver, nil
}
