// Package registry holds the server's known-packs table: the resource/data
// packs advertised to a client entering the Configuration phase.
package registry

import (
	_ "embed"
	"fmt"

	deepcopy "github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"
)

//go:embed packs.yaml
var defaultPacksYAML []byte

// Entry is one known pack, matching the wire shape of packet.Pack without
// depending on the packet package — the registry is a data table, not a
// protocol type.
type Entry struct {
	Namespace string `yaml:"namespace"`
	ID        string `yaml:"id"`
	Version   string `yaml:"version"`
}

// Registry holds an immutable, shared list of known packs.
type Registry struct {
	entries []Entry
}

// Load parses the embedded default known-packs table.
func Load() (*Registry, error) {
	return parse(defaultPacksYAML)
}

// LoadFrom parses a caller-supplied YAML document in the same shape as the
// embedded default, for deployments that want to override the table.
func LoadFrom(doc []byte) (*Registry, error) {
	return parse(doc)
}

func parse(doc []byte) (*Registry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(doc, &entries); err != nil {
		return nil, fmt.Errorf("registry: parse known packs: %w", err)
	}
	return &Registry{entries: entries}, nil
}

// Packs returns a copy of the registry's entries; callers may not mutate
// the registry's own backing slice through it. The copy is a real deep
// copy rather than a shallow reslice, since a future Entry field could add
// a nested slice or map that slices.Clone would still alias.
func (r *Registry) Packs() ([]Entry, error) {
	var out []Entry
	if err := deepcopy.Copy(&out, &r.entries); err != nil {
		return nil, fmt.Errorf("registry: copy known packs: %w", err)
	}
	return out, nil
}
