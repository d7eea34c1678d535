package types

// Serializer encodes one attribute value to bytes and back. Implementations
// must round-trip: Decode(Encode(v)) equals v for every Value.
type Serializer interface {
	// Name identifies the format, e.g. "json".
	Name() string
	Encode(v Value) ([]byte, error)
	Decode(data []byte) (Value, error)
}
