package level

import (
	"maps"
	"slices"
	"strconv"

	"github.com/milk9111/ogmo3/doc"
)

// ValueKind identifies which type a Value holds.
type ValueKind int

const (
	BooleanValue ValueKind = iota
	StringValue
	NumberValue
)

// Value is a dynamically typed custom value.
//
// Ogmo's level format does not store the type alongside the value, so a
// Value is reconstructed from its JSON shape alone. Integers, floats and enum
// indices all come back as numbers; cross-reference the project's value
// templates to recover the declared type.
type Value struct {
	kind ValueKind
	b    bool
	s    string
	n    float64
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: BooleanValue, b: b} }

// String returns a string Value.
func String(s string) Value { return Value{kind: StringValue, s: s} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: NumberValue, n: n} }

// Kind reports the type held by v.
func (v Value) Kind() ValueKind { return v.kind }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BooleanValue }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == StringValue }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == NumberValue }

func (v Value) String() string {
	switch v.kind {
	case BooleanValue:
		return strconv.FormatBool(v.b)
	case StringValue:
		return v.s
	}
	return strconv.FormatFloat(v.n, 'g', -1, 64)
}

func (v Value) doc() any {
	switch v.kind {
	case BooleanValue:
		return v.b
	case StringValue:
		return v.s
	}
	return v.n
}

func decodeValue(raw any, path string) (Value, error) {
	switch t := raw.(type) {
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	}
	return Value{}, doc.Invalid(path, "expected boolean, string or number, got %s", doc.KindOf(raw))
}

// decodeValues reads an optional name to Value mapping. An absent member
// reads as a nil map.
func decodeValues(r *doc.Record, key string) map[string]Value {
	sub := r.OptSub(key)
	if sub == nil {
		return nil
	}
	obj := sub.Object()
	out := make(map[string]Value, obj.Len())
	for _, name := range obj.Keys() {
		raw, _ := obj.Get(name)
		v, err := decodeValue(raw, sub.At(name))
		if err != nil {
			r.Fail(err)
			return nil
		}
		out[name] = v
	}
	return out
}

func encodeValues(values map[string]Value) *doc.Object {
	o := doc.NewObject()
	for _, name := range slices.Sorted(maps.Keys(values)) {
		o.Set(name, values[name].doc())
	}
	return o
}
