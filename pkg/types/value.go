package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds, in natural sort order.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the closed set of things an attribute file can hold: null, a
// string, a number, a bool, or an ordered list of those scalars. The zero
// Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list value. Nested lists are flattened into the result so
// the list only ever holds scalars.
func List(items ...Value) Value {
	out := make([]Value, 0, len(items))
	for _, it := range items {
		if it.kind == KindList {
			out = append(out, it.list...)
			continue
		}
		out = append(out, it)
	}
	return Value{kind: KindList, list: out}
}

// Strings returns a list value of strings.
func Strings(ss ...string) Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = String(s)
	}
	return Value{kind: KindList, list: out}
}

// FromAny converts a decoded Go value into a Value. It accepts nil, strings,
// bools, every integer and float type, json.Number, time.Time, Value, and
// slices of scalars. Maps and nested slices return ErrInvalidInput.
func FromAny(v any) (Value, error) {
	return fromAny(v, false)
}

func fromAny(v any, inList bool) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		if inList && x.kind == KindList {
			return Value{}, fmt.Errorf("%w: nested lists are not supported", ErrInvalidInput)
		}
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: number %q: %v", ErrInvalidInput, x, err)
		}
		return Number(f), nil
	case time.Time:
		return String(x.Format(time.RFC3339Nano)), nil
	case []string:
		return Strings(x...), nil
	case []Value:
		if inList {
			return Value{}, fmt.Errorf("%w: nested lists are not supported", ErrInvalidInput)
		}
		for _, it := range x {
			if it.kind == KindList {
				return Value{}, fmt.Errorf("%w: nested lists are not supported", ErrInvalidInput)
			}
		}
		return Value{kind: KindList, list: append([]Value{}, x...)}, nil
	case []any:
		if inList {
			return Value{}, fmt.Errorf("%w: nested lists are not supported", ErrInvalidInput)
		}
		out := make([]Value, 0, len(x))
		for _, it := range x {
			ev, err := fromAny(it, true)
			if err != nil {
				return Value{}, err
			}
			out = append(out, ev)
		}
		return Value{kind: KindList, list: out}, nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidInput, v)
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string and true when v is a string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the number and true when v is a number.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the bool and true when v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsList returns a copy of the elements and true when v is a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]Value{}, v.list...), true
}

// Len returns the number of elements of a list, 0 for null, and 1 for any
// other scalar.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindNull:
		return 0
	default:
		return 1
	}
}

// AsArray coerces v to list form: a list is returned as is, null becomes an
// empty list, and a scalar becomes a single-element list.
func (v Value) AsArray() Value {
	switch v.kind {
	case KindList:
		return v
	case KindNull:
		return Value{kind: KindList, list: []Value{}}
	default:
		return Value{kind: KindList, list: []Value{v}}
	}
}

// Contains reports whether a list holds an element equal to elem. For a
// scalar v it is plain equality.
func (v Value) Contains(elem Value) bool {
	if v.kind != KindList {
		return v.Equal(elem)
	}
	for _, it := range v.list {
		if it.Equal(elem) {
			return true
		}
	}
	return false
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders values naturally: by kind first (null < bool < number <
// string < list), then by content. It returns -1, 0 or +1.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindBool:
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	case KindNumber:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		default:
			return 0
		}
	case KindString:
		return strings.Compare(v.str, o.str)
	case KindList:
		for i := 0; i < len(v.list) && i < len(o.list); i++ {
			if c := v.list[i].Compare(o.list[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(v.list) < len(o.list):
			return -1
		case len(v.list) > len(o.list):
			return 1
		}
	}
	return 0
}

// Any converts v back to plain Go values: nil, string, float64, bool, or
// []any.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]any, len(v.list))
		for i, it := range v.list {
			out[i] = it.Any()
		}
		return out
	default:
		return nil
	}
}

// String renders v for humans: strings unquoted, everything else as JSON.
func (v Value) String() string {
	if v.kind == KindString {
		return v.str
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(data)
}

// formatNumber writes integral values without a fraction and everything
// else in plain decimal notation, never in exponent form.
func formatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: number %v is not representable", ErrInvalidInput, f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		s, err := formatNumber(v.num)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, it := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := it.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler. Numbers are emitted as explicit
// scalar nodes so they keep their plain decimal form.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindBool:
		return v.b, nil
	case KindNumber:
		s, err := formatNumber(v.num)
		if err != nil {
			return nil, err
		}
		tag := "!!float"
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e18 {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: s}, nil
	case KindList:
		if v.list == nil {
			return []Value{}, nil
		}
		return v.list, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
