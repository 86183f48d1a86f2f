package project

import (
	"fmt"

	"github.com/milk9111/ogmo3/doc"
)

// ValueTemplate declares a custom value on levels, entities or decal
// layers.
type ValueTemplate struct {
	Name string
	// Data is one of the *Value types below, chosen by the document's
	// "definition" tag.
	Data ValueData
}

// ValueData holds the settings specific to one kind of value template.
type ValueData interface {
	// Definition returns the tag the editor writes for this kind.
	Definition() string
	encode(o *doc.Object)
}

// BooleanValue is a checkbox value.
type BooleanValue struct {
	Defaults bool
}

// ColorValue is a colour value, written as a hex string.
type ColorValue struct {
	Defaults string
	// IncludeAlpha reports whether the alpha component is part of the colour.
	IncludeAlpha bool
}

// EnumValue picks one of a fixed list of choices. Instances store the
// index of the chosen entry.
type EnumValue struct {
	Defaults int
	Choices  []string
}

// IntegerValue is a whole number, optionally clamped to [Min, Max].
type IntegerValue struct {
	Defaults int
	Bounded  bool
	Min      int
	Max      int
}

// FloatValue is a real number, optionally clamped to [Min, Max].
type FloatValue struct {
	Defaults float64
	Bounded  bool
	Min      float64
	Max      float64
}

// StringValue is a single line of text.
type StringValue struct {
	Defaults string
	// MaxLength is the longest string the editor accepts. 0 to ignore.
	MaxLength      int
	TrimWhitespace bool
}

// TextValue is multi-line text.
type TextValue struct {
	Defaults string
}

func (*BooleanValue) Definition() string { return "Boolean" }
func (*ColorValue) Definition() string   { return "Color" }
func (*EnumValue) Definition() string    { return "Enum" }
func (*IntegerValue) Definition() string { return "Integer" }
func (*FloatValue) Definition() string   { return "Float" }
func (*StringValue) Definition() string  { return "String" }
func (*TextValue) Definition() string    { return "Text" }

func (v *BooleanValue) encode(o *doc.Object) {
	o.Set("defaults", v.Defaults)
}

func (v *ColorValue) encode(o *doc.Object) {
	o.Set("defaults", v.Defaults)
	o.Set("includeAlpha", v.IncludeAlpha)
}

func (v *EnumValue) encode(o *doc.Object) {
	o.Set("defaults", v.Defaults)
	o.Set("choices", strs(v.Choices))
}

func (v *IntegerValue) encode(o *doc.Object) {
	o.Set("defaults", v.Defaults)
	o.Set("bounded", v.Bounded)
	o.Set("min", v.Min)
	o.Set("max", v.Max)
}

func (v *FloatValue) encode(o *doc.Object) {
	o.Set("defaults", v.Defaults)
	o.Set("bounded", v.Bounded)
	o.Set("min", v.Min)
	o.Set("max", v.Max)
}

func (v *StringValue) encode(o *doc.Object) {
	o.Set("defaults", v.Defaults)
	o.Set("maxLength", v.MaxLength)
	o.Set("trimWhitespace", v.TrimWhitespace)
}

func (v *TextValue) encode(o *doc.Object) {
	o.Set("defaults", v.Defaults)
}

func decodeValueTemplate(r *doc.Record) ValueTemplate {
	t := ValueTemplate{Name: r.String("name")}
	tag := r.String("definition")
	if r.Err() != nil {
		return t
	}
	switch tag {
	case "Boolean":
		t.Data = &BooleanValue{Defaults: r.Bool("defaults")}
	case "Color":
		t.Data = &ColorValue{Defaults: r.String("defaults"), IncludeAlpha: r.Bool("includeAlpha")}
	case "Enum":
		t.Data = &EnumValue{Defaults: r.Int("defaults"), Choices: doc.List(r, "choices", doc.AsString)}
	case "Integer":
		t.Data = &IntegerValue{Defaults: r.Int("defaults"), Bounded: r.Bool("bounded"), Min: r.Int("min"), Max: r.Int("max")}
	case "Float":
		t.Data = &FloatValue{Defaults: r.Float("defaults"), Bounded: r.Bool("bounded"), Min: r.Float("min"), Max: r.Float("max")}
	case "String":
		t.Data = &StringValue{Defaults: r.String("defaults"), MaxLength: r.Int("maxLength"), TrimWhitespace: r.Bool("trimWhitespace")}
	case "Text":
		t.Data = &TextValue{Defaults: r.String("defaults")}
	default:
		r.Fail(doc.UnknownTag(r.At("definition"), tag))
	}
	return t
}

func encodeValueTemplate(t ValueTemplate) (*doc.Object, error) {
	if t.Data == nil {
		return nil, fmt.Errorf("value template %q has no data", t.Name)
	}
	o := doc.NewObject()
	o.Set("name", t.Name)
	o.Set("definition", t.Data.Definition())
	t.Data.encode(o)
	return o, nil
}

func decodeValueTemplates(r *doc.Record, key string) []ValueTemplate {
	return doc.Records(r, key, decodeValueTemplate)
}

func encodeValueTemplates(ts []ValueTemplate) ([]any, error) {
	out := make([]any, len(ts))
	for i, t := range ts {
		o, err := encodeValueTemplate(t)
		if err != nil {
			return nil, err
		}
		out[i] = o
	}
	return out, nil
}
