package catalog

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is every collection plus the stats, as of one moment.
type Snapshot struct {
	Stats      Stats      `yaml:"estadisticas"`
	Categories []Category `yaml:"categorias"`
	Authors    []Author   `yaml:"autores"`
	Books      []Book     `yaml:"libros"`
	Users      []User     `yaml:"usuarios"`
	Loans      []Loan     `yaml:"prestamos"`
	Reviews    []Review   `yaml:"resenas"`
}

// Marshal encodes a snapshot to YAML bytes.
func Marshal(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes YAML produced by Marshal.
func Parse(data []byte) (Snapshot, error) {
	var s Snapshot
	if len(data) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot YAML: %w", err)
	}
	return s, nil
}
