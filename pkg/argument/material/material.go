// Package material provides the host supplied material enumeration
// and an enum argument parser over it.
package material

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"go.minekube.com/cmdarg/pkg/argument"
	"go.minekube.com/cmdarg/pkg/edition/java/proto/version"
	"go.minekube.com/cmdarg/pkg/gate/proto"
)

// ID is the identity of material parsers.
const ID = "material"

// Material is a material name, e.g. STONE.
type Material string

func (m Material) String() string { return string(m) }

// Entry is a material and the first version that has it.
type Entry struct {
	Name  Material `yaml:"name"`
	Since string   `yaml:"since"`

	since *proto.Version
}

// Registry is a read-only versioned list of materials.
type Registry struct {
	entries []Entry
}

//go:embed materials.yml
var defaultMaterials []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the embedded registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		var err error
		defaultRegistry, err = Load(bytes.NewReader(defaultMaterials))
		if err != nil {
			panic(fmt.Errorf("invalid embedded materials: %w", err))
		}
	})
	return defaultRegistry
}

// Load reads a registry from a yaml list of {name, since} entries.
func Load(r io.Reader) (*Registry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no materials")
		}
		return nil, fmt.Errorf("error decoding materials: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("no materials")
	}
	seen := make(map[Material]struct{}, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("material #%d has no name", i+1)
		}
		if _, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("duplicate material %s", e.Name)
		}
		seen[e.Name] = struct{}{}
		v := version.FromName(e.Since)
		if v == version.Unknown {
			return nil, fmt.Errorf("material %s: unknown version %q", e.Name, e.Since)
		}
		e.since = v
	}
	return &Registry{entries: entries}, nil
}

// LoadFile reads a registry from a yaml file.
func LoadFile(name string) (*Registry, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return r, nil
}

// Entries returns all entries in registry order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Values returns the materials available at protocol, in registry order.
func (r *Registry) Values(protocol proto.Protocol) []Material {
	var values []Material
	for _, e := range r.entries {
		if protocol.GreaterEqual(e.since) {
			values = append(values, e.Name)
		}
	}
	return values
}

// NewParser returns an enum parser over the materials available at protocol.
func NewParser(r *Registry, protocol proto.Protocol) (*argument.EnumParser[Material], error) {
	return argument.NewEnum(ID, r.Values(protocol), Material.String)
}
