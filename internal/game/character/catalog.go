package character

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

// LoadDefinitionFromBytes parses a single character definition from raw YAML bytes.
// Unknown keys are rejected.
//
// Postcondition: Returns a validated *Definition exactly as written, untrimmed, or an error.
func LoadDefinitionFromBytes(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("parsing character YAML: %w", err)
	}
	if def.Rarity == "" {
		def.Rarity = stats.Rare
	}
	if def.Level == 0 {
		def.Level = 1
	}
	if def.Stars == 0 {
		def.Stars = 1
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Catalog is an immutable set of trimmed character definitions indexed by ID.
type Catalog struct {
	byID map[string]*Definition
}

// NewCatalog builds a catalog from defs, trimming each through New.
//
// Postcondition: Returns an error on a duplicate ID or an invalid definition.
func NewCatalog(overrides Overrides, defs ...*Definition) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		built, err := New(d, overrides)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[built.ID]; dup {
			return nil, fmt.Errorf("character %q: duplicate id", built.ID)
		}
		c.byID[built.ID] = built
	}
	return c, nil
}

// LoadCatalog reads all *.yaml files in dir into a Catalog.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the catalog or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadCatalog(dir string, overrides Overrides) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading character dir %q: %w", dir, err)
	}

	var defs []*Definition
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		def, err := LoadDefinitionFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, def)
	}
	return NewCatalog(overrides, defs...)
}

// Get returns the definition for id.
func (c *Catalog) Get(id string) (*Definition, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharacter, id)
	}
	return d, nil
}

// IDs returns every character ID in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every definition ordered by ID.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, 0, len(c.byID))
	for _, id := range c.IDs() {
		out = append(out, c.byID[id])
	}
	return out
}

// Team resolves a slot list of IDs. Empty IDs become nil gaps, which the
// battle engine skips.
//
// Postcondition: len(result) == len(ids), or a non-nil error wrapping ErrUnknownCharacter.
func (c *Catalog) Team(ids []string) ([]*Definition, error) {
	team := make([]*Definition, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		d, err := c.Get(id)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i+1, err)
		}
		team[i] = d
	}
	return team, nil
}
