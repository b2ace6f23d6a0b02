package character

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Override lifts the rarity ability allowance for a single identity.
type Override struct {
	// Actives replaces the rarity's active skill allowance when set.
	Actives *int `yaml:"actives"`
	// Passives replaces the rarity's passive skill allowance when set.
	Passives *int `yaml:"passives"`
	// AwakenedMultiplier replaces the default awakening boost when > 0.
	AwakenedMultiplier float64 `yaml:"awakened_multiplier"`
}

// Overrides maps character ID to its Override.
type Overrides map[string]Override

// LoadOverridesFromBytes parses an override table.
//
// Postcondition: Returns a table whose allowances are all >= 0, or an error.
func LoadOverridesFromBytes(data []byte) (Overrides, error) {
	out := Overrides{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing overrides YAML: %w", err)
	}
	for id, ov := range out {
		if ov.Actives != nil && *ov.Actives < 0 {
			return nil, fmt.Errorf("override %q: actives must be >= 0", id)
		}
		if ov.Passives != nil && *ov.Passives < 0 {
			return nil, fmt.Errorf("override %q: passives must be >= 0", id)
		}
		if ov.AwakenedMultiplier < 0 {
			return nil, fmt.Errorf("override %q: awakened_multiplier must be >= 0", id)
		}
	}
	return out, nil
}

// LoadOverrides reads the override table at path. An empty path or a missing
// file yields an empty table.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Overrides{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading overrides %q: %w", path, err)
	}
	ov, err := LoadOverridesFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return ov, nil
}
