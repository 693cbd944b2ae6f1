package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Op is a comparison operator accepted inside an operator map.
type Op string

// Supported comparison operators.
const (
	OpGT  Op = "gt"
	OpGTE Op = "gte"
	OpLT  Op = "lt"
	OpLTE Op = "lte"
	OpNE  Op = "ne"
)

var opSymbols = map[Op]string{
	OpGT:  ">",
	OpGTE: ">=",
	OpLT:  "<",
	OpLTE: "<=",
	OpNE:  "!=",
}

// Symbol returns the grammar symbol for the operator and whether it is known.
func (o Op) Symbol() (string, bool) {
	s, ok := opSymbols[o]
	return s, ok
}

// IsValid reports whether the operator is one of the supported ones.
func (o Op) IsValid() bool {
	_, ok := opSymbols[o]
	return ok
}

// Kind classifies the value attached to a field.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindOps
)

// Operand is one op → value pair of an operator map.
// Op is kept verbatim: unknown operators survive decoding and are dropped at compile time.
type Operand struct {
	Op    Op
	Value any
}

// Value is the right-hand side of a filter entry.
type Value struct {
	kind   Kind
	scalar any
	list   []any
	ops    []Operand
}

// Null returns an absent value. Null entries produce no clause.
func Null() Value { return Value{kind: KindNull} }

// Scalar wraps a string, number or boolean (nil becomes Null).
func Scalar(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindScalar, scalar: v}
}

// List wraps a membership test over the given values.
func List(vs ...any) Value {
	if vs == nil {
		vs = []any{}
	}
	return Value{kind: KindList, list: vs}
}

// Ops wraps an ordered operator map.
func Ops(ops ...Operand) Value {
	return Value{kind: KindOps, ops: ops}
}

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// Scalar returns the scalar payload.
func (v Value) Scalar() any { return v.scalar }

// List returns the list payload.
func (v Value) List() []any { return v.list }

// Ops returns the operator map in decoding order.
func (v Value) Ops() []Operand { return v.ops }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Constrains reports whether the value compiles to at least one clause.
// Nulls, empty lists and operator maps without a known operator do not.
func (v Value) Constrains() bool {
	switch v.kind {
	case KindScalar:
		return true
	case KindList:
		return len(v.list) > 0
	case KindOps:
		for _, o := range v.ops {
			if o.Op.IsValid() {
				return true
			}
		}
	}
	return false
}

// Entry is a single field → value condition.
type Entry struct {
	Field string
	Value Value
}

// Conditions is an ordered field → value mapping. All entries are AND-ed.
// The same field may appear more than once; every entry narrows the result.
type Conditions []Entry

// Of builds Conditions from entries.
func Of(entries ...Entry) Conditions { return Conditions(entries) }

// Eq is a shorthand for a scalar entry.
func Eq(field string, v any) Entry { return Entry{Field: field, Value: Scalar(v)} }

// In is a shorthand for a membership entry.
func In(field string, vs ...any) Entry { return Entry{Field: field, Value: List(vs...)} }

// Cmp is a shorthand for a single-operator entry.
func Cmp(field string, op Op, v any) Entry {
	return Entry{Field: field, Value: Ops(Operand{Op: op, Value: v})}
}

// FromMap converts a plain map into Conditions with keys in lexical order.
// Nested []any and map[string]any become lists and operator maps.
func FromMap(m map[string]any) Conditions {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Conditions, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Field: k, Value: valueOf(m[k])})
	}
	return out
}

func valueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case []any:
		return List(t...)
	case []string:
		vs := make([]any, len(t))
		for i, s := range t {
			vs[i] = s
		}
		return List(vs...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ops := make([]Operand, 0, len(keys))
		for _, k := range keys {
			ops = append(ops, Operand{Op: Op(k), Value: t[k]})
		}
		return Ops(ops...)
	default:
		return Scalar(v)
	}
}

// IsEmpty reports whether there are no entries.
func (c Conditions) IsEmpty() bool { return len(c) == 0 }

// References reports whether any constraining entry targets one of the given fields.
func (c Conditions) References(fields ...string) bool {
	for _, e := range c {
		if !e.Value.Constrains() {
			continue
		}
		for _, f := range fields {
			if e.Field == f {
				return true
			}
		}
	}
	return false
}

// UnmarshalJSON decodes a JSON object keeping key order.
// Numbers are kept as json.Number so integer literals round-trip exactly.
func (c *Conditions) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}

	out := Conditions{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		v, err := decodeValue(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		out = append(out, Entry{Field: key, Value: v})
		return nil
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// MarshalJSON encodes the conditions back to a JSON object in entry order.
func (c Conditions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := e.Value.marshal()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", e.Field, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v Value) marshal() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.scalar)
	case KindList:
		return json.Marshal(v.list)
	case KindOps:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, o := range v.ops {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(string(o.Op))
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			val, err := json.Marshal(o.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

func decodeValue(raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Null(), nil
	}
	switch raw[0] {
	case 'n':
		return Null(), nil
	case '[':
		var list []any
		if err := decodeNumbers(raw, &list); err != nil {
			return Value{}, err
		}
		return List(list...), nil
	case '{':
		var ops []Operand
		err := decodeObject(raw, func(key string, r json.RawMessage) error {
			var operand any
			if err := decodeNumbers(r, &operand); err != nil {
				return fmt.Errorf("operator %q: %w", key, err)
			}
			ops = append(ops, Operand{Op: Op(key), Value: operand})
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return Ops(ops...), nil
	default:
		var scalar any
		if err := decodeNumbers(raw, &scalar); err != nil {
			return Value{}, err
		}
		return Scalar(scalar), nil
	}
}

func decodeNumbers(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dst)
}

// decodeObject walks the top-level keys of a JSON object in document order.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode filter: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("filter must be a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode filter key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("filter key must be a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode filter value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode filter: %w", err)
	}
	return nil
}
