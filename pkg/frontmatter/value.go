package frontmatter

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Kind distinguishes the two shapes a header value can take.
type Kind uint8

// Kind values.
const (
	// KindScalar is a plain string value from a "key: value" line.
	KindScalar Kind = iota
	// KindNested is a one-level object opened by a "key:" line.
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindNested:
		return "nested"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a header value. Exactly one of Scalar or Nested is meaningful,
// selected by Kind.
type Value struct {
	Kind   Kind              // Kind selects the populated field.
	Scalar string            // Scalar holds the value when Kind == KindScalar.
	Nested map[string]string // Nested holds the object when Kind == KindNested.
}

// ScalarValue creates a scalar Value.
func ScalarValue(s string) Value {
	return Value{Kind: KindScalar, Scalar: s}
}

// NestedValue creates a nested Value. A nil map is replaced by an empty one.
func NestedValue(m map[string]string) Value {
	if m == nil {
		m = map[string]string{}
	}
	return Value{Kind: KindNested, Nested: m}
}

// Any returns the value as a string or a map[string]string.
func (v Value) Any() any {
	if v.Kind == KindNested {
		return maps.Clone(v.Nested)
	}
	return v.Scalar
}

// MarshalJSON encodes a scalar as a JSON string and a nested value as an object.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// Metadata maps top-level header keys to values.
type Metadata map[string]Value

// GetString returns the scalar value for key.
// Returns ("", false) if key is missing or holds a nested object.
func (m Metadata) GetString(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.Kind != KindScalar {
		return "", false
	}
	return v.Scalar, true
}

// GetNested returns the nested object for key.
// Returns (nil, false) if key is missing or holds a scalar.
func (m Metadata) GetNested(key string) (map[string]string, bool) {
	v, ok := m[key]
	if !ok || v.Kind != KindNested {
		return nil, false
	}
	return v.Nested, true
}

// Map returns a plain view of the metadata suitable for generic encoders.
// Nested objects are copied.
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Any()
	}
	return out
}
