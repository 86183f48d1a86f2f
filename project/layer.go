package project

import (
	"fmt"
	"maps"
	"slices"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/doc"
)

// LayerTemplate declares a layer that every level in the project carries.
type LayerTemplate struct {
	Name string
	// GridSize is the size of each cell in the layer's grid.
	GridSize common.Vec2[int]
	// ExportID is the unique export ID of the layer.
	ExportID string
	// Data is one of *TileLayerData, *GridLayerData, *EntityLayerData or
	// *DecalLayerData.
	Data LayerData

	// untagged is set when the template was decoded without a
	// "definition" member, so it is written back the same way.
	untagged bool
}

// LayerData holds the settings specific to one kind of layer template.
type LayerData interface {
	// Definition returns the tag the editor writes for this kind.
	Definition() string
	encode(o *doc.Object) error
}

// TileLayerData configures a tile layer.
type TileLayerData struct {
	// ExportMode decides whether tiles are stored as IDs or co-ords.
	ExportMode common.ExportMode
	// ArrayMode decides whether tiles are stored in a 1D or 2D array.
	ArrayMode      common.ArrayMode
	DefaultTileset string
}

// GridLayerData configures a grid layer.
type GridLayerData struct {
	ArrayMode common.ArrayMode
	// Legend maps each cell value to the colour the editor shows it in.
	Legend map[string]string
}

// EntityLayerData configures an entity layer.
type EntityLayerData struct {
	// RequiredTags must all be present on an entity placed on the layer.
	RequiredTags []string
	// ExcludedTags must all be absent from an entity placed on the layer.
	ExcludedTags []string
}

// DecalLayerData configures a decal layer.
type DecalLayerData struct {
	// Folder is where decal images are found, relative to the project.
	Folder               string
	IncludeImageSequence bool
	Scaleable            bool
	Rotatable            bool
	Values               []ValueTemplate
}

func (*TileLayerData) Definition() string   { return "tile" }
func (*GridLayerData) Definition() string   { return "grid" }
func (*EntityLayerData) Definition() string { return "entity" }
func (*DecalLayerData) Definition() string  { return "decal" }

func (d *TileLayerData) encode(o *doc.Object) error {
	o.Set("exportMode", int(d.ExportMode))
	o.Set("arrayMode", int(d.ArrayMode))
	o.Set("defaultTileset", d.DefaultTileset)
	return nil
}

func (d *GridLayerData) encode(o *doc.Object) error {
	o.Set("arrayMode", int(d.ArrayMode))
	legend := doc.NewObject()
	for _, k := range slices.Sorted(maps.Keys(d.Legend)) {
		legend.Set(k, d.Legend[k])
	}
	o.Set("legend", legend)
	return nil
}

func (d *EntityLayerData) encode(o *doc.Object) error {
	o.Set("requiredTags", strs(d.RequiredTags))
	o.Set("excludedTags", strs(d.ExcludedTags))
	return nil
}

func (d *DecalLayerData) encode(o *doc.Object) error {
	values, err := encodeValueTemplates(d.Values)
	if err != nil {
		return err
	}
	o.Set("folder", d.Folder)
	o.Set("includeImageSequence", d.IncludeImageSequence)
	o.Set("scaleable", d.Scaleable)
	o.Set("rotatable", d.Rotatable)
	o.Set("values", values)
	return nil
}

// Templates written by the editor carry a "definition" tag. Older files
// do not, and are matched on their fields in this order.
const (
	shapeTile = iota
	shapeGrid
	shapeEntity
	shapeDecal
)

var layerTemplateShapes = []doc.Shape{
	shapeTile: {Name: "tile", Fields: []doc.Field{
		{Name: "exportMode", Kind: doc.KindNumber},
		{Name: "arrayMode", Kind: doc.KindNumber},
		{Name: "defaultTileset", Kind: doc.KindString},
	}},
	shapeGrid: {Name: "grid", Fields: []doc.Field{
		{Name: "arrayMode", Kind: doc.KindNumber},
		{Name: "legend", Kind: doc.KindObject},
	}},
	shapeEntity: {Name: "entity", Fields: []doc.Field{
		{Name: "requiredTags", Kind: doc.KindArray},
		{Name: "excludedTags", Kind: doc.KindArray},
	}},
	shapeDecal: {Name: "decal", Fields: []doc.Field{
		{Name: "folder", Kind: doc.KindString},
		{Name: "includeImageSequence", Kind: doc.KindBool},
		{Name: "scaleable", Kind: doc.KindBool},
		{Name: "rotatable", Kind: doc.KindBool},
		{Name: "values", Kind: doc.KindArray},
	}},
}

var layerTags = map[string]int{
	"tile":   shapeTile,
	"grid":   shapeGrid,
	"entity": shapeEntity,
	"decal":  shapeDecal,
}

func decodeLayerTemplate(r *doc.Record) LayerTemplate {
	t := LayerTemplate{
		Name:     r.String("name"),
		GridSize: r.Vec2i("gridSize"),
		ExportID: r.String("exportID"),
	}
	if r.Err() != nil {
		return t
	}

	tag := r.OptString("definition")
	if r.Err() != nil {
		return t
	}
	var shape int
	if tag != nil {
		s, ok := layerTags[*tag]
		if !ok {
			r.Fail(doc.UnknownTag(r.At("definition"), *tag))
			return t
		}
		shape = s
	} else {
		s, err := doc.Match(r.Object(), r.Path(), layerTemplateShapes)
		if err != nil {
			r.Fail(err)
			return t
		}
		shape = s
		t.untagged = true
	}

	switch shape {
	case shapeTile:
		t.Data = &TileLayerData{
			ExportMode:     exportMode(r, "exportMode"),
			ArrayMode:      arrayMode(r, "arrayMode"),
			DefaultTileset: r.String("defaultTileset"),
		}
	case shapeGrid:
		t.Data = &GridLayerData{ArrayMode: arrayMode(r, "arrayMode"), Legend: stringMap(r, "legend")}
	case shapeEntity:
		t.Data = &EntityLayerData{
			RequiredTags: doc.List(r, "requiredTags", doc.AsString),
			ExcludedTags: doc.List(r, "excludedTags", doc.AsString),
		}
	case shapeDecal:
		t.Data = &DecalLayerData{
			Folder:               r.String("folder"),
			IncludeImageSequence: r.Bool("includeImageSequence"),
			Scaleable:            r.Bool("scaleable"),
			Rotatable:            r.Bool("rotatable"),
			Values:               decodeValueTemplates(r, "values"),
		}
	}
	return t
}

func encodeLayerTemplate(t LayerTemplate) (*doc.Object, error) {
	if t.Data == nil {
		return nil, fmt.Errorf("layer template %q has no data", t.Name)
	}
	o := doc.NewObject()
	if !t.untagged {
		o.Set("definition", t.Data.Definition())
	}
	o.Set("name", t.Name)
	o.Set("gridSize", doc.Vec(t.GridSize))
	o.Set("exportID", t.ExportID)
	if err := t.Data.encode(o); err != nil {
		return nil, fmt.Errorf("layer template %q: %w", t.Name, err)
	}
	return o, nil
}

func exportMode(r *doc.Record, key string) common.ExportMode {
	m := common.ExportMode(r.Int(key))
	if r.Err() == nil && !m.Valid() {
		r.Fail(doc.Invalid(r.At(key), "unknown export mode %d", int(m)))
	}
	return m
}

func arrayMode(r *doc.Record, key string) common.ArrayMode {
	m := common.ArrayMode(r.Int(key))
	if r.Err() == nil && !m.Valid() {
		r.Fail(doc.Invalid(r.At(key), "unknown array mode %d", int(m)))
	}
	return m
}

// stringMap reads an object whose members are all strings.
func stringMap(r *doc.Record, key string) map[string]string {
	sub := r.Sub(key)
	if sub == nil {
		return nil
	}
	out := make(map[string]string, sub.Object().Len())
	for _, k := range sub.Object().Keys() {
		out[k] = sub.String(k)
	}
	return out
}
