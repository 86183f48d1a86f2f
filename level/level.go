// Package level parses and writes Ogmo Editor 3 level documents.
package level

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/ogmo3/doc"
)

// Level is a decoded Ogmo level.
type Level struct {
	// OgmoVersion is the editor version that wrote the level, if recorded.
	OgmoVersion string
	Width       float64
	Height      float64
	// OffsetX and OffsetY position the level. Useful for chunked levels.
	OffsetX float64
	OffsetY float64
	// Layers are the level's layers, in document order.
	Layers []Layer
	// Values are the level's custom values. Nil when the document has none.
	Values map[string]Value
}

// Parse decodes a level from JSON text.
func Parse(b []byte) (*Level, error) {
	v, err := doc.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("level: parse: %w", err)
	}
	return Decode(v)
}

// Decode decodes a level from a parsed document tree.
func Decode(v any) (*Level, error) {
	l, err := decodeLevel(v)
	if err != nil {
		return nil, fmt.Errorf("level: decode: %w", err)
	}
	return l, nil
}

// Load reads and decodes the level file at path.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	return Parse(b)
}

// LoadFS reads and decodes a level from fsys.
func LoadFS(fsys fs.FS, name string) (*Level, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", name, err)
	}
	return Parse(b)
}

// Layer returns the first layer with the given name.
func (l *Level) Layer(name string) (Layer, bool) {
	for _, layer := range l.Layers {
		if layer.Base().Name == name {
			return layer, true
		}
	}
	return nil, false
}

// Doc encodes the level as a document tree in the editor's own layout.
func (l *Level) Doc() (*doc.Object, error) {
	o := doc.NewObject()
	if l.OgmoVersion != "" {
		o.Set("ogmoVersion", l.OgmoVersion)
	}
	o.Set("width", l.Width)
	o.Set("height", l.Height)
	o.Set("offsetX", l.OffsetX)
	o.Set("offsetY", l.OffsetY)
	layers := make([]any, len(l.Layers))
	for i, layer := range l.Layers {
		lo, err := encodeLayer(layer)
		if err != nil {
			return nil, fmt.Errorf("level: encode layers[%d]: %w", i, err)
		}
		layers[i] = lo
	}
	o.Set("layers", layers)
	if l.Values != nil {
		o.Set("values", encodeValues(l.Values))
	}
	return o, nil
}

// Encode writes the level as JSON text.
func (l *Level) Encode(pretty bool) ([]byte, error) {
	o, err := l.Doc()
	if err != nil {
		return nil, err
	}
	return doc.Stringify(o, pretty)
}

// MarshalJSON implements json.Marshaler.
func (l *Level) MarshalJSON() ([]byte, error) {
	return l.Encode(false)
}
