package doc

import (
	"math"

	"github.com/milk9111/ogmo3/common"
)

// AsBool converts a tree value to a bool.
func AsBool(v any, path string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, Mismatch(path, KindBool, v)
	}
	return b, nil
}

// AsFloat converts a tree value to a float64.
func AsFloat(v any, path string) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, Mismatch(path, KindNumber, v)
	}
	return f, nil
}

// AsInt converts a tree value to an int. Numbers with a fractional part are
// rejected.
func AsInt(v any, path string) (int, error) {
	f, err := AsFloat(v, path)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, Invalid(path, "expected integer, got %v", f)
	}
	return int(f), nil
}

// AsString converts a tree value to a string.
func AsString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", Mismatch(path, KindString, v)
	}
	return s, nil
}

// AsArray converts a tree value to an array.
func AsArray(v any, path string) ([]any, error) {
	a, ok := v.([]any)
	if !ok {
		return nil, Mismatch(path, KindArray, v)
	}
	return a, nil
}

// Record reads typed fields out of an object. The first failure sticks: later
// reads return zero values and Err reports the original error. Records
// created with Sub share that error with their parent.
type Record struct {
	obj  *Object
	path string
	root *Record
	err  error
}

// NewRecord wraps v, which must be an object.
func NewRecord(v any, path string) (*Record, error) {
	obj, ok := v.(*Object)
	if !ok || obj == nil {
		return nil, Mismatch(path, KindObject, v)
	}
	r := &Record{obj: obj, path: path}
	r.root = r
	return r, nil
}

// Object returns the wrapped object.
func (r *Record) Object() *Object { return r.obj }

// Path returns the record's location in the document.
func (r *Record) Path() string { return r.path }

// At returns the path of a member of this record.
func (r *Record) At(key string) string { return Join(r.path, key) }

// Err returns the first error recorded by this record or any record sharing
// its state.
func (r *Record) Err() error { return r.root.err }

// Fail records err unless an earlier error is already held.
func (r *Record) Fail(err error) {
	if err != nil && r.root.err == nil {
		r.root.err = err
	}
}

// Has reports whether key is present with a non-null value.
func (r *Record) Has(key string) bool {
	v, ok := r.obj.Get(key)
	return ok && v != nil
}

func (r *Record) field(key string, required bool) (any, bool) {
	if r.root.err != nil {
		return nil, false
	}
	v, ok := r.obj.Get(key)
	if !ok || v == nil {
		if required {
			r.Fail(MissingField(r.At(key)))
		}
		return nil, false
	}
	return v, true
}

func read[T any](r *Record, key string, required bool, conv func(any, string) (T, error)) (T, bool) {
	var zero T
	v, ok := r.field(key, required)
	if !ok {
		return zero, false
	}
	out, err := conv(v, r.At(key))
	if err != nil {
		r.Fail(err)
		return zero, false
	}
	return out, true
}

func optional[T any](r *Record, key string, conv func(any, string) (T, error)) *T {
	v, ok := read(r, key, false, conv)
	if !ok {
		return nil
	}
	return &v
}

// Bool reads a required boolean member.
func (r *Record) Bool(key string) bool {
	v, _ := read(r, key, true, AsBool)
	return v
}

// Float reads a required number member.
func (r *Record) Float(key string) float64 {
	v, _ := read(r, key, true, AsFloat)
	return v
}

// Int reads a required integer member.
func (r *Record) Int(key string) int {
	v, _ := read(r, key, true, AsInt)
	return v
}

// String reads a required string member.
func (r *Record) String(key string) string {
	v, _ := read(r, key, true, AsString)
	return v
}

// Array reads a required array member.
func (r *Record) Array(key string) []any {
	v, _ := read(r, key, true, AsArray)
	return v
}

// OptBool reads an optional boolean member; nil when absent.
func (r *Record) OptBool(key string) *bool { return optional(r, key, AsBool) }

// OptFloat reads an optional number member; nil when absent.
func (r *Record) OptFloat(key string) *float64 { return optional(r, key, AsFloat) }

// OptInt reads an optional integer member; nil when absent.
func (r *Record) OptInt(key string) *int { return optional(r, key, AsInt) }

// OptString reads an optional string member; nil when absent.
func (r *Record) OptString(key string) *string { return optional(r, key, AsString) }

// Sub returns a record for a required object member. It shares error state
// with r, and is nil if the member is missing or not an object.
func (r *Record) Sub(key string) *Record {
	v, ok := r.field(key, true)
	if !ok {
		return nil
	}
	return r.wrap(v, r.At(key))
}

// OptSub is Sub for an optional member.
func (r *Record) OptSub(key string) *Record {
	v, ok := r.field(key, false)
	if !ok {
		return nil
	}
	return r.wrap(v, r.At(key))
}

// Elem returns a record for an array element or other nested value that
// shares error state with r.
func (r *Record) Elem(v any, path string) *Record {
	if r.root.err != nil {
		return nil
	}
	return r.wrap(v, path)
}

func (r *Record) wrap(v any, path string) *Record {
	obj, ok := v.(*Object)
	if !ok || obj == nil {
		r.Fail(Mismatch(path, KindObject, v))
		return nil
	}
	return &Record{obj: obj, path: path, root: r.root}
}

// List reads a required array member, converting each element.
func List[T any](r *Record, key string, elem func(any, string) (T, error)) []T {
	arr, ok := read(r, key, true, AsArray)
	if !ok {
		return nil
	}
	out, err := Elems(arr, r.At(key), elem)
	if err != nil {
		r.Fail(err)
		return nil
	}
	return out
}

// OptList is List for an optional member; nil when absent.
func OptList[T any](r *Record, key string, elem func(any, string) (T, error)) []T {
	if !r.Has(key) {
		return nil
	}
	return List(r, key, elem)
}

// Records reads a required array of objects, decoding each with decode.
// Element records share error state with r. The result is never nil.
func Records[T any](r *Record, key string, decode func(*Record) T) []T {
	arr := r.Array(key)
	out := make([]T, 0, len(arr))
	for i, v := range arr {
		sub := r.Elem(v, Index(r.At(key), i))
		if sub == nil {
			return out
		}
		out = append(out, decode(sub))
	}
	return out
}

// Elems converts every element of arr. The result is never nil.
func Elems[T any](arr []any, path string, elem func(any, string) (T, error)) ([]T, error) {
	out := make([]T, len(arr))
	for i, v := range arr {
		e, err := elem(v, Index(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// ListOf adapts an element converter to read a nested array, for 2D data.
func ListOf[T any](elem func(any, string) (T, error)) func(any, string) ([]T, error) {
	return func(v any, path string) ([]T, error) {
		arr, err := AsArray(v, path)
		if err != nil {
			return nil, err
		}
		return Elems(arr, path, elem)
	}
}

// Vec2f reads a required {x, y} object of numbers.
func (r *Record) Vec2f(key string) common.Vec2[float64] {
	sub := r.Sub(key)
	if sub == nil {
		return common.Vec2[float64]{}
	}
	return common.V2(sub.Float("x"), sub.Float("y"))
}

// Vec2i reads a required {x, y} object of integers.
func (r *Record) Vec2i(key string) common.Vec2[int] {
	sub := r.Sub(key)
	if sub == nil {
		return common.Vec2[int]{}
	}
	return common.V2(sub.Int("x"), sub.Int("y"))
}

// AsVec2f converts an {x, y} object of numbers.
func AsVec2f(v any, path string) (common.Vec2[float64], error) {
	r, err := NewRecord(v, path)
	if err != nil {
		return common.Vec2[float64]{}, err
	}
	out := common.V2(r.Float("x"), r.Float("y"))
	return out, r.Err()
}

// Vec returns v as an {x, y} object.
func Vec[T common.Number](v common.Vec2[T]) *Object {
	o := NewObject()
	o.Set("x", float64(v.X))
	o.Set("y", float64(v.Y))
	return o
}

// Array converts a slice to a tree array with conv applied to each element.
// The result is never nil, so empty slices encode as [].
func Array[T any](s []T, conv func(T) any) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = conv(e)
	}
	return out
}
