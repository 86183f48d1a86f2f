package doc

import "strings"

// Field is a member a Shape requires, with the JSON kind its value must have.
type Field struct {
	Name string
	Kind Kind
}

// Shape is the field signature of one variant of an untagged record.
type Shape struct {
	Name   string
	Fields []Field
}

// Matches reports whether every field of s is present in o with a value of
// the required kind.
func (s Shape) Matches(o *Object) bool {
	for _, f := range s.Fields {
		v, ok := o.Get(f.Name)
		if !ok || KindOf(v) != f.Kind {
			return false
		}
	}
	return true
}

// Match returns the index of the first shape that v matches. Shapes are
// tried in order and the first match wins, so callers list more specific
// shapes first. v must be an object.
func Match(v any, path string, shapes []Shape) (int, error) {
	obj, ok := v.(*Object)
	if !ok || obj == nil {
		return -1, Mismatch(path, KindObject, v)
	}
	for i, s := range shapes {
		if s.Matches(obj) {
			return i, nil
		}
	}
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.Name
	}
	return -1, &DecodeError{
		Kind:   ErrNoMatchingVariant,
		Path:   path,
		Detail: "tried " + strings.Join(names, ", "),
	}
}
