// Package config implements a layered configuration resolver: named or inline
// configuration units are discovered and invoked once at bootstrap, their
// mappings are deep-merged into a single dot-addressable namespace, and a
// mutable runtime override store is layered on top for lookups.
//
// Features:
//   - Named, inline, struct-backed, env-backed, and file-backed (TOML/YAML/JSON)
//     configuration units sharing one ToMapping contract
//   - Deterministic merge: discovery order is total, later units win key-wise
//   - Immutable merged namespace after bootstrap, safe for concurrent readers
//   - Runtime overrides with set/has/remove, consulted before the namespace
//   - Total type coercion (string, int, float, bool) that falls back to a
//     caller default instead of returning errors
//   - Environment snapshot captured once, read through typed accessors
//   - Builder pattern with validation hooks
//   - Subtree decoding into structs via mapstructure
//
// Quick Start:
//
//	environ := config.NewEnv()
//	res, err := config.NewBuilder().
//	    WithInline("app", func() (map[string]any, error) {
//	        return map[string]any{
//	            "env":   environ.StringOr("APP_ENV", "production"),
//	            "debug": false,
//	        }, nil
//	    }).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env := res.StringOr("app.env", "production")
//	debug := res.BoolOr("app.debug", false)
//
// Precedence (lowest to highest):
//  1. Bootstrap defaults (Builder.WithDefault)
//  2. Configuration unit output, in discovery order (later units win)
//  3. Environment values resolved inside unit bodies (captured at that point;
//     the merge never re-applies them afterwards)
//  4. Runtime overrides (Resolver.Set)
//
// Thread Safety:
// The merged namespace is never mutated after Build returns, so any number of
// goroutines may read it without coordination. The override store is guarded
// by a read-write mutex.
package config
