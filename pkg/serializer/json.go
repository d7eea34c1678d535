package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// JSON encodes values as compact JSON.
type JSON struct{}

// Name returns "json".
func (JSON) Name() string { return "json" }

// Encode writes v as a single line of JSON.
func (JSON) Encode(v types.Value) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return data, nil
}

// Decode parses one JSON document. Trailing whitespace is allowed; trailing
// data is not.
func (JSON) Decode(data []byte) (types.Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return types.Value{}, fmt.Errorf("decoding json: empty document")
	}
	var v types.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return types.Value{}, fmt.Errorf("decoding json: %w", err)
	}
	return v, nil
}
