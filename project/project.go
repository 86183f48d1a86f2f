// Package project parses and writes Ogmo Editor 3 project documents.
package project

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/blang/semver/v4"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/doc"
)

// Project is a decoded Ogmo project.
type Project struct {
	Name string
	// OgmoVersion is the editor version that wrote the project, if recorded.
	OgmoVersion string
	// LevelPaths are the directories holding the project's levels, relative
	// to the project file.
	LevelPaths      []string
	BackgroundColor string
	GridColor       string
	// AnglesRadians reports whether rotations are stored in radians rather
	// than degrees.
	AnglesRadians bool
	// DirectoryDepth is how deep the editor searches LevelPaths for levels.
	DirectoryDepth       int
	LayerGridDefaultSize common.Vec2[int]
	LevelDefaultSize     common.Vec2[int]
	LevelMinSize         common.Vec2[int]
	LevelMaxSize         common.Vec2[int]
	LevelValues          []ValueTemplate
	// DefaultExportMode is the file extension new levels are saved with.
	DefaultExportMode string
	// CompactExport is nil when the document does not record it.
	CompactExport *bool
	EntityTags    []string
	Layers        []LayerTemplate
	Entities      []EntityTemplate
	Tilesets      []Tileset
}

// Parse decodes a project from JSON text.
func Parse(b []byte) (*Project, error) {
	v, err := doc.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("project: parse: %w", err)
	}
	return Decode(v)
}

// Decode decodes a project from a parsed document tree.
func Decode(v any) (*Project, error) {
	p, err := decodeProject(v)
	if err != nil {
		return nil, fmt.Errorf("project: decode: %w", err)
	}
	return p, nil
}

// Load reads and decodes the project file at path.
func Load(path string) (*Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", path, err)
	}
	return Parse(b)
}

// LoadFS reads and decodes a project from fsys.
func LoadFS(fsys fs.FS, name string) (*Project, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", name, err)
	}
	return Parse(b)
}

// Version parses OgmoVersion. Versions such as "3.4" are accepted.
func (p *Project) Version() (semver.Version, error) {
	if p.OgmoVersion == "" {
		return semver.Version{}, fmt.Errorf("project: no ogmoVersion recorded")
	}
	v, err := semver.ParseTolerant(p.OgmoVersion)
	if err != nil {
		return semver.Version{}, fmt.Errorf("project: parse version %q: %w", p.OgmoVersion, err)
	}
	return v, nil
}

// Layer returns the layer template with the given name.
func (p *Project) Layer(name string) (*LayerTemplate, bool) {
	for i := range p.Layers {
		if p.Layers[i].Name == name {
			return &p.Layers[i], true
		}
	}
	return nil, false
}

// Entity returns the entity template with the given name.
func (p *Project) Entity(name string) (*EntityTemplate, bool) {
	for i := range p.Entities {
		if p.Entities[i].Name == name {
			return &p.Entities[i], true
		}
	}
	return nil, false
}

// Tileset returns the tileset with the given label.
func (p *Project) Tileset(label string) (*Tileset, bool) {
	for i := range p.Tilesets {
		if p.Tilesets[i].Label == label {
			return &p.Tilesets[i], true
		}
	}
	return nil, false
}

// Doc encodes the project as a document tree in the editor's own layout.
func (p *Project) Doc() (*doc.Object, error) {
	levelValues, err := encodeValueTemplates(p.LevelValues)
	if err != nil {
		return nil, fmt.Errorf("project: encode levelValues: %w", err)
	}
	layers := make([]any, len(p.Layers))
	for i, t := range p.Layers {
		o, err := encodeLayerTemplate(t)
		if err != nil {
			return nil, fmt.Errorf("project: encode layers[%d]: %w", i, err)
		}
		layers[i] = o
	}
	entities := make([]any, len(p.Entities))
	for i, t := range p.Entities {
		o, err := encodeEntityTemplate(t)
		if err != nil {
			return nil, fmt.Errorf("project: encode entities[%d]: %w", i, err)
		}
		entities[i] = o
	}

	o := doc.NewObject()
	o.Set("name", p.Name)
	if p.OgmoVersion != "" {
		o.Set("ogmoVersion", p.OgmoVersion)
	}
	o.Set("levelPaths", strs(p.LevelPaths))
	o.Set("backgroundColor", p.BackgroundColor)
	o.Set("gridColor", p.GridColor)
	o.Set("anglesRadians", p.AnglesRadians)
	o.Set("directoryDepth", p.DirectoryDepth)
	o.Set("layerGridDefaultSize", doc.Vec(p.LayerGridDefaultSize))
	o.Set("levelDefaultSize", doc.Vec(p.LevelDefaultSize))
	o.Set("levelMinSize", doc.Vec(p.LevelMinSize))
	o.Set("levelMaxSize", doc.Vec(p.LevelMaxSize))
	o.Set("levelValues", levelValues)
	o.Set("defaultExportMode", p.DefaultExportMode)
	if p.CompactExport != nil {
		o.Set("compactExport", *p.CompactExport)
	}
	o.Set("entityTags", strs(p.EntityTags))
	o.Set("layers", layers)
	o.Set("entities", entities)
	o.Set("tilesets", doc.Array(p.Tilesets, func(t Tileset) any { return encodeTileset(t) }))
	return o, nil
}

// Encode writes the project as JSON text.
func (p *Project) Encode(pretty bool) ([]byte, error) {
	o, err := p.Doc()
	if err != nil {
		return nil, err
	}
	return doc.Stringify(o, pretty)
}

// MarshalJSON implements json.Marshaler.
func (p *Project) MarshalJSON() ([]byte, error) {
	return p.Encode(false)
}

func decodeProject(v any) (*Project, error) {
	r, err := doc.NewRecord(v, "")
	if err != nil {
		return nil, err
	}
	p := &Project{
		Name:                 r.String("name"),
		LevelPaths:           doc.List(r, "levelPaths", doc.AsString),
		BackgroundColor:      r.String("backgroundColor"),
		GridColor:            r.String("gridColor"),
		AnglesRadians:        r.Bool("anglesRadians"),
		DirectoryDepth:       r.Int("directoryDepth"),
		LayerGridDefaultSize: r.Vec2i("layerGridDefaultSize"),
		LevelDefaultSize:     r.Vec2i("levelDefaultSize"),
		LevelMinSize:         r.Vec2i("levelMinSize"),
		LevelMaxSize:         r.Vec2i("levelMaxSize"),
		DefaultExportMode:    r.String("defaultExportMode"),
		CompactExport:        r.OptBool("compactExport"),
		EntityTags:           doc.List(r, "entityTags", doc.AsString),
	}
	if s := r.OptString("ogmoVersion"); s != nil {
		p.OgmoVersion = *s
	}
	p.LevelValues = decodeValueTemplates(r, "levelValues")
	p.Layers = doc.Records(r, "layers", decodeLayerTemplate)
	p.Entities = doc.Records(r, "entities", decodeEntityTemplate)
	p.Tilesets = doc.Records(r, "tilesets", decodeTileset)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func strs(s []string) []any {
	return doc.Array(s, func(v string) any { return v })
}
