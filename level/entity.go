package level

import (
	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/doc"
)

// Entity is an entity instance. The optional fields are only written by the
// editor when the entity's template enables the matching feature, and are
// nil otherwise.
type Entity struct {
	Name string
	ID   int
	// ExportID is the unique export ID of the entity.
	ExportID string
	X        float64
	Y        float64

	// Width and Height are present if the template is resizable.
	Width  *float64
	Height *float64
	// OriginX and OriginY are present if the template defines an origin.
	OriginX *float64
	OriginY *float64
	// Rotation is present if the template is rotatable.
	Rotation *float64
	// FlippedX and FlippedY are present if the template is flippable on that axis.
	FlippedX *bool
	FlippedY *bool
	// Nodes is present if the template has nodes.
	Nodes []common.Vec2[float64]
	// Values is present if the template defines custom values.
	Values map[string]Value
}

// Decal is a decal instance.
type Decal struct {
	X float64
	Y float64
	// Texture is the decal's image, relative to its layer's folder.
	Texture string
	// Rotation is present if the decal layer is rotatable.
	Rotation *float64
	// ScaleX and ScaleY are present if the decal layer is scalable.
	ScaleX *float64
	ScaleY *float64
	// Values is absent in older editor builds and reads as nil there.
	Values map[string]Value
}

func decodeEntity(r *doc.Record) Entity {
	e := Entity{
		Name:     r.String("name"),
		ID:       r.Int("id"),
		ExportID: r.String("_eid"),
		X:        r.Float("x"),
		Y:        r.Float("y"),
		Width:    r.OptFloat("width"),
		Height:   r.OptFloat("height"),
		OriginX:  r.OptFloat("originX"),
		OriginY:  r.OptFloat("originY"),
		Rotation: r.OptFloat("rotation"),
		FlippedX: r.OptBool("flippedX"),
		FlippedY: r.OptBool("flippedY"),
	}
	e.Nodes = doc.OptList(r, "nodes", doc.AsVec2f)
	e.Values = decodeValues(r, "values")
	return e
}

func encodeEntity(e Entity) *doc.Object {
	o := doc.NewObject()
	o.Set("name", e.Name)
	o.Set("id", e.ID)
	o.Set("_eid", e.ExportID)
	o.Set("x", e.X)
	o.Set("y", e.Y)
	setOpt(o, "width", e.Width)
	setOpt(o, "height", e.Height)
	setOpt(o, "originX", e.OriginX)
	setOpt(o, "originY", e.OriginY)
	setOpt(o, "rotation", e.Rotation)
	setOpt(o, "flippedX", e.FlippedX)
	setOpt(o, "flippedY", e.FlippedY)
	if e.Nodes != nil {
		o.Set("nodes", doc.Array(e.Nodes, func(n common.Vec2[float64]) any { return doc.Vec(n) }))
	}
	if e.Values != nil {
		o.Set("values", encodeValues(e.Values))
	}
	return o
}

func decodeDecal(r *doc.Record) Decal {
	d := Decal{
		X:        r.Float("x"),
		Y:        r.Float("y"),
		Texture:  r.String("texture"),
		Rotation: r.OptFloat("rotation"),
		ScaleX:   r.OptFloat("scaleX"),
		ScaleY:   r.OptFloat("scaleY"),
	}
	d.Values = decodeValues(r, "values")
	return d
}

func encodeDecal(d Decal) *doc.Object {
	o := doc.NewObject()
	o.Set("x", d.X)
	o.Set("y", d.Y)
	o.Set("texture", d.Texture)
	setOpt(o, "rotation", d.Rotation)
	setOpt(o, "scaleX", d.ScaleX)
	setOpt(o, "scaleY", d.ScaleY)
	if d.Values != nil {
		o.Set("values", encodeValues(d.Values))
	}
	return o
}

// setOpt writes *v under key, omitting the member entirely when v is nil.
func setOpt[T any](o *doc.Object, key string, v *T) {
	if v != nil {
		o.Set(key, *v)
	}
}
