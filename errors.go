package config

import "errors"

var (
	// ErrUnitInvoked is returned when a registry's units are invoked more
	// than once. Unit output is captured exactly once per process lifecycle.
	ErrUnitInvoked = errors.New("configuration units already invoked")

	// ErrUnitFailed wraps the failure of a configuration unit to produce a
	// well-formed mapping. It aborts bootstrap.
	ErrUnitFailed = errors.New("configuration unit failed")

	// ErrDiscovery wraps a failure to enumerate a unit source location.
	// It aborts bootstrap.
	ErrDiscovery = errors.New("unit discovery failed")

	// ErrDuplicateUnit is returned when a named unit is registered twice
	// under the same name.
	ErrDuplicateUnit = errors.New("duplicate named unit")

	// ErrInvalidPath is returned when a dot-path contains an empty or
	// malformed segment.
	ErrInvalidPath = errors.New("invalid configuration path")
)
