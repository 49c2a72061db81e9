package frontmatter

import (
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single metadata value: a string, a boolean or a list of strings.
// The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	flag bool
	list []string
}

// StringValue returns a Value holding s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// BoolValue returns a Value holding b.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// ListValue returns a Value holding a copy of items.
func ListValue(items []string) Value {
	return Value{kind: KindList, list: append([]string{}, items...)}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string held by v. ok is false for other kinds.
func (v Value) AsString() (s string, ok bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean held by v. ok is false for other kinds.
func (v Value) AsBool() (b bool, ok bool) {
	return v.flag, v.kind == KindBool
}

// AsList returns a copy of the list held by v. ok is false for other kinds.
func (v Value) AsList() (items []string, ok bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string{}, v.list...), true
}

// String formats v for display. Lists are joined with ", ".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		return strings.Join(v.list, ", ")
	}
	return v.str
}

// MarshalYAML encodes v as its natural YAML scalar or sequence.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindBool:
		return v.flag, nil
	case KindList:
		return append([]string{}, v.list...), nil
	}
	return v.str, nil
}

// Metadata is an ordered set of key/value pairs read from a document header.
// Keys keep the position of their first occurrence.
type Metadata struct {
	keys   []string
	values map[string]Value
}

// set stores value under key. A repeated key keeps its position and takes
// the new value.
func (m *Metadata) set(key string, value Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Len returns the number of keys.
func (m Metadata) Len() int { return len(m.keys) }

// Keys returns the keys in header order.
func (m Metadata) Keys() []string { return append([]string{}, m.keys...) }

// Get returns the value stored under key.
func (m Metadata) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Text returns the string stored under key. It reports false when the key
// is missing or holds another kind.
func (m Metadata) Text(key string) (string, bool) {
	v, ok := m.values[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Flag returns the boolean stored under key.
func (m Metadata) Flag(key string) (bool, bool) {
	v, ok := m.values[key]
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// List returns the list stored under key.
func (m Metadata) List(key string) ([]string, bool) {
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	return v.AsList()
}

// MarshalYAML encodes the metadata as a mapping in header order.
func (m Metadata) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(m.keys))
	for _, k := range m.keys {
		v, _ := m.values[k].MarshalYAML()
		out = append(out, yaml.MapItem{Key: k, Value: v})
	}
	return out, nil
}
