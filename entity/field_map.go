package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
)

// Value is a single request field: a scalar or an ordered list of scalars
// (product names, counts and prices are lists).
type Value struct {
	raw   any
	items []string
	list  bool
}

// NewValue wraps a scalar or a slice. Numbers keep their JSON representation,
// text forms follow the gateway convention: integers in base 10, floats in the
// shortest form ("0.16"), true as "1" and false as "".
func NewValue(v any) Value {
	if v == nil {
		return Value{}
	}
	if _, ok := v.([]byte); !ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			raw := make([]any, rv.Len())
			items := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				raw[i], items[i] = scalar(rv.Index(i).Interface())
			}
			return Value{raw: raw, items: items, list: true}
		}
	}
	raw, text := scalar(v)
	return Value{raw: raw, items: []string{text}}
}

func scalar(v any) (any, string) {
	switch s := v.(type) {
	case nil:
		return nil, ""
	case string:
		return s, s
	case []byte:
		return string(s), string(s)
	case json.Number:
		return s, s.String()
	case decimal.Decimal:
		return json.Number(s.String()), s.String()
	case *decimal.Decimal:
		if s == nil {
			return nil, ""
		}
		return json.Number(s.String()), s.String()
	case bool:
		if s {
			return s, "1"
		}
		return s, ""
	case int:
		return s, strconv.Itoa(s)
	case int8, int16, int32, int64:
		return s, strconv.FormatInt(reflect.ValueOf(s).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return s, strconv.FormatUint(reflect.ValueOf(s).Uint(), 10)
	case float32:
		return s, strconv.FormatFloat(float64(s), 'f', -1, 32)
	case float64:
		return s, strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String(), s.String()
	default:
		return v, fmt.Sprint(v)
	}
}

// IsList reports whether the value is a multi-valued field.
func (v Value) IsList() bool {
	return v.list
}

// Items returns the text form of every element; a scalar has exactly one.
func (v Value) Items() []string {
	items := make([]string, len(v.items))
	copy(items, v.items)
	return items
}

// Join returns the scalar text, or the list elements joined with delimiter.
func (v Value) Join(delimiter string) string {
	var b bytes.Buffer
	for i, item := range v.items {
		if i > 0 {
			b.WriteString(delimiter)
		}
		b.WriteString(item)
	}
	return b.String()
}

// IsEmpty reports an empty string, an empty list or a nil value.
func (v Value) IsEmpty() bool {
	if v.list {
		return len(v.items) == 0
	}
	return len(v.items) == 0 || v.items[0] == ""
}

// Raw returns the value as it is encoded to JSON.
func (v Value) Raw() any {
	return v.raw
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// FieldMap is an insertion-ordered set of request fields. The zero value is
// ready to use.
type FieldMap struct {
	keys   []string
	values map[string]Value
}

func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]Value)}
}

// Set stores value under name, keeping the original position of an existing
// key. It returns the map for chaining.
func (m *FieldMap) Set(name string, value any) *FieldMap {
	if v, ok := value.(Value); ok {
		return m.SetValue(name, v)
	}
	return m.SetValue(name, NewValue(value))
}

func (m *FieldMap) SetValue(name string, value Value) *FieldMap {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
	return m
}

func (m *FieldMap) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Text returns the field joined with ';' or "" when absent.
func (m *FieldMap) Text(name string) string {
	v, _ := m.Get(name)
	return v.Join(";")
}

func (m *FieldMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

func (m *FieldMap) Delete(name string) {
	if m == nil {
		return
	}
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	for i, key := range m.keys {
		if key == name {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns field names in insertion order.
func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns an independent copy; values are immutable and shared.
func (m *FieldMap) Clone() *FieldMap {
	clone := NewFieldMap()
	if m == nil {
		return clone
	}
	for _, key := range m.keys {
		clone.SetValue(key, m.values[key])
	}
	return clone
}

// MarshalJSON encodes the fields as a JSON object in insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.values[key].raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		b.Write(name)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
