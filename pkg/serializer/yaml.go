package serializer

import (
	"bytes"
	"fmt"

	"github.com/mesh-intelligence/mockstore/pkg/types"
	"gopkg.in/yaml.v3"
)

// YAML encodes values as human-readable YAML documents.
type YAML struct{}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }

// Encode writes v as a YAML document.
func (YAML) Encode(v types.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses one YAML document. An empty document decodes to null.
func (YAML) Decode(data []byte) (types.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return types.Value{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return types.Null(), nil
	}
	var v types.Value
	if err := node.Content[0].Decode(&v); err != nil {
		return types.Value{}, fmt.Errorf("decoding yaml: %w", err)
	}
	return v, nil
}
