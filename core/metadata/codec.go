package metadata

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of a Record.
type document struct {
	Max       *int              `yaml:"max"`
	Order     []string          `yaml:"order"`
	Originals map[string]string `yaml:"originals"`
	Extra     map[string]any    `yaml:",inline"`
}

// Marshal encodes a record as YAML.
func Marshal(r *Record) ([]byte, error) {
	doc := document{
		Max:       r.Max,
		Order:     r.Order,
		Originals: r.Originals,
		Extra:     r.Extra,
	}
	if doc.Order == nil {
		doc.Order = []string{}
	}
	if doc.Originals == nil {
		doc.Originals = map[string]string{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a YAML record. An empty document yields an empty record.
func Unmarshal(data []byte) (*Record, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	r := NewRecord()
	if doc.Order != nil {
		r.Order = doc.Order
	}
	if doc.Originals != nil {
		r.Originals = doc.Originals
	}
	if doc.Extra != nil {
		r.Extra = doc.Extra
	}
	r.Max = doc.Max
	r.reindex()
	return r, nil
}
