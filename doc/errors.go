package doc

import (
	"errors"
	"fmt"
	"strconv"
)

// Decode error kinds. A *DecodeError unwraps to one of these.
var (
	ErrNoMatchingVariant = errors.New("no matching variant")
	ErrUnknownVariantTag = errors.New("unknown variant tag")
	ErrMissingField      = errors.New("missing required field")
	ErrTypeMismatch      = errors.New("type mismatch")
)

// DecodeError reports a well-formed document that does not match the
// expected shape.
type DecodeError struct {
	Kind   error
	Path   string
	Detail string
}

func (e *DecodeError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

// MissingField returns an ErrMissingField error for path.
func MissingField(path string) error {
	return &DecodeError{Kind: ErrMissingField, Path: path}
}

// Mismatch returns an ErrTypeMismatch error for a value at path that is not
// of the wanted kind.
func Mismatch(path string, want Kind, got any) error {
	return &DecodeError{
		Kind:   ErrTypeMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected %s, got %s", want, KindOf(got)),
	}
}

// Invalid returns an ErrTypeMismatch error with a free-form detail.
func Invalid(path, format string, args ...any) error {
	return &DecodeError{Kind: ErrTypeMismatch, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// UnknownTag returns an ErrUnknownVariantTag error for tag at path.
func UnknownTag(path, tag string) error {
	return &DecodeError{Kind: ErrUnknownVariantTag, Path: path, Detail: strconv.Quote(tag)}
}

// Join appends an object member name to path.
func Join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Index appends an array index to path.
func Index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
