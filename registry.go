package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Registry holds configuration units in discovery order and invokes them
// exactly once. Discovery order is total: it is the order of Add and
// DiscoverDir calls, with directory entries enumerated in lexical order.
// Later-discovered units override earlier ones at colliding keys within the
// same namespace.
type Registry struct {
	mu      sync.Mutex
	units   []Unit
	named   map[string]bool
	invoked bool
	log     zerolog.Logger
}

// NewRegistry creates an empty registry. Logging is disabled until
// SetLogger is called.
func NewRegistry() *Registry {
	return &Registry{
		named: make(map[string]bool),
		log:   zerolog.Nop(),
	}
}

// SetLogger installs the logger used for bootstrap diagnostics.
func (r *Registry) SetLogger(log zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = log
}

// Add appends a unit to the discovery sequence. It rejects invalid namespace
// keys, duplicate named units, and any addition after invocation.
func (r *Registry) Add(u Unit) error {
	if !isValidKeySegment(u.name) {
		return fmt.Errorf("%w: unit namespace %q is not a valid key segment", ErrInvalidPath, u.name)
	}
	if u.mapper == nil {
		return fmt.Errorf("%w: %s has no mapper", ErrUnitFailed, u.origin)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.invoked {
		return ErrUnitInvoked
	}
	if u.named {
		if r.named[u.name] {
			return fmt.Errorf("%w: %q", ErrDuplicateUnit, u.name)
		}
		r.named[u.name] = true
	}

	r.units = append(r.units, u)
	r.log.Debug().Str("unit", u.origin).Str("namespace", u.name).Msg("unit registered")
	return nil
}

// DiscoverDir scans the given directories, in order, for file-backed units.
// Every regular file with a .toml, .yaml, .yml, or .json extension becomes a
// unit whose namespace is the lower-cased file base name; other files are
// skipped. A directory that cannot be enumerated aborts discovery.
func (r *Registry) DiscoverDir(dirs ...string) error {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("%w: cannot enumerate %q: %w", ErrDiscovery, dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if detectFileFormat(path) == "" {
				continue
			}
			if err := r.Add(FileUnit(path)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Namespaces returns the namespace keys in discovery order. Shared namespaces
// appear once per contributing unit.
func (r *Registry) Namespaces() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.units))
	for i, u := range r.units {
		out[i] = u.name
	}
	return out
}

// unitOutput is one unit's captured mapping, tagged with its namespace.
// Outputs keep discovery order so the merge stays deterministic.
type unitOutput struct {
	namespace string
	mapping   map[string]any
}

// InvokeAll invokes every unit in discovery order and captures its output.
// It may be called exactly once; subsequent calls return ErrUnitInvoked.
// A unit that fails, or that produces a nil mapping, aborts the invocation:
// the application cannot safely start with partial configuration.
func (r *Registry) InvokeAll() ([]unitOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.invoked {
		return nil, ErrUnitInvoked
	}
	r.invoked = true

	outputs := make([]unitOutput, 0, len(r.units))
	for _, u := range r.units {
		mapping, err := u.mapper.ToMapping()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnitFailed, u.origin, err)
		}
		if mapping == nil {
			return nil, fmt.Errorf("%w: %s returned no mapping", ErrUnitFailed, u.origin)
		}
		r.log.Debug().Str("unit", u.origin).Int("keys", len(mapping)).Msg("unit invoked")
		outputs = append(outputs, unitOutput{namespace: u.name, mapping: mapping})
	}

	return outputs, nil
}

// FileUnit builds a unit backed by a TOML, YAML, or JSON file. The namespace
// is the lower-cased file base name ("database.toml" contributes under
// "database"). The file is read when the unit is invoked, during bootstrap.
func FileUnit(path string) Unit {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return Unit{
		name:   strings.ToLower(name),
		origin: fmt.Sprintf("file unit %q", path),
		mapper: MapperFunc(func() (map[string]any, error) {
			return parseUnitFile(path)
		}),
	}
}

// parseUnitFile reads and parses a unit file according to its format.
func parseUnitFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit file %q: %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine format of unit file %q", path)
		}
	}

	mapping := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &mapping); err != nil {
			return nil, fmt.Errorf("failed to parse TOML unit file %q: %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&mapping); err != nil {
			return nil, fmt.Errorf("failed to parse JSON unit file %q: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &mapping); err != nil {
			return nil, fmt.Errorf("failed to parse YAML unit file %q: %w", path, err)
		}
	}

	return mapping, nil
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing. JSON is
// checked first as the strictest format, YAML last as the most permissive.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
