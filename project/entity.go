package project

import (
	"fmt"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/doc"
)

// EntityTemplate declares a kind of entity that can be placed on entity
// layers.
type EntityTemplate struct {
	Name string
	// ExportID is the unique export ID of the entity.
	ExportID string
	// Limit is the maximum number of instances per level. 0 to ignore.
	Limit  int
	Size   common.Vec2[float64]
	Origin common.Vec2[float64]
	// OriginAnchored reports whether the entity is positioned by its origin.
	OriginAnchored bool
	Shape          Shape
	// Color is the colour of the entity's icon in the editor.
	Color       string
	TileX       bool
	TileY       bool
	TileSize    common.Vec2[float64]
	ResizeableX bool
	ResizeableY bool
	Rotatable   bool
	// RotationDegrees is the rotation snapping interval.
	RotationDegrees float64
	CanFlipX        bool
	CanFlipY        bool
	CanSetColor     bool
	HasNodes        bool
	// NodeLimit is the maximum number of nodes. 0 to ignore.
	NodeLimit   int
	NodeDisplay int
	NodeGhost   bool
	Tags        []string
	Values      []ValueTemplate
	// Texture is the path of the entity's icon, if it has one.
	Texture *string
	// TextureImage is the icon encoded as a base64 data URI, if it has one.
	TextureImage *string
}

// Shape is the outline the editor draws for an entity without a texture.
type Shape struct {
	Label  string
	Points []common.Vec2[float64]
}

func decodeEntityTemplate(r *doc.Record) EntityTemplate {
	e := EntityTemplate{
		Name:            r.String("name"),
		ExportID:        r.String("exportID"),
		Limit:           r.Int("limit"),
		Size:            r.Vec2f("size"),
		Origin:          r.Vec2f("origin"),
		OriginAnchored:  r.Bool("originAnchored"),
		Color:           r.String("color"),
		TileX:           r.Bool("tileX"),
		TileY:           r.Bool("tileY"),
		TileSize:        r.Vec2f("tileSize"),
		ResizeableX:     r.Bool("resizeableX"),
		ResizeableY:     r.Bool("resizeableY"),
		Rotatable:       r.Bool("rotatable"),
		RotationDegrees: r.Float("rotationDegrees"),
		CanFlipX:        r.Bool("canFlipX"),
		CanFlipY:        r.Bool("canFlipY"),
		CanSetColor:     r.Bool("canSetColor"),
		HasNodes:        r.Bool("hasNodes"),
		NodeLimit:       r.Int("nodeLimit"),
		NodeDisplay:     r.Int("nodeDisplay"),
		NodeGhost:       r.Bool("nodeGhost"),
		Tags:            doc.List(r, "tags", doc.AsString),
		Texture:         r.OptString("texture"),
		TextureImage:    r.OptString("textureImage"),
	}
	if shape := r.Sub("shape"); shape != nil {
		e.Shape = Shape{
			Label:  shape.String("label"),
			Points: doc.List(shape, "points", doc.AsVec2f),
		}
	}
	e.Values = decodeValueTemplates(r, "values")
	return e
}

func encodeEntityTemplate(e EntityTemplate) (*doc.Object, error) {
	values, err := encodeValueTemplates(e.Values)
	if err != nil {
		return nil, fmt.Errorf("entity template %q: %w", e.Name, err)
	}
	shape := doc.NewObject()
	shape.Set("label", e.Shape.Label)
	shape.Set("points", doc.Array(e.Shape.Points, func(p common.Vec2[float64]) any { return doc.Vec(p) }))

	o := doc.NewObject()
	o.Set("exportID", e.ExportID)
	o.Set("name", e.Name)
	o.Set("limit", e.Limit)
	o.Set("size", doc.Vec(e.Size))
	o.Set("origin", doc.Vec(e.Origin))
	o.Set("originAnchored", e.OriginAnchored)
	o.Set("shape", shape)
	o.Set("color", e.Color)
	o.Set("tileX", e.TileX)
	o.Set("tileY", e.TileY)
	o.Set("tileSize", doc.Vec(e.TileSize))
	o.Set("resizeableX", e.ResizeableX)
	o.Set("resizeableY", e.ResizeableY)
	o.Set("rotatable", e.Rotatable)
	o.Set("rotationDegrees", e.RotationDegrees)
	o.Set("canFlipX", e.CanFlipX)
	o.Set("canFlipY", e.CanFlipY)
	o.Set("canSetColor", e.CanSetColor)
	o.Set("hasNodes", e.HasNodes)
	o.Set("nodeLimit", e.NodeLimit)
	o.Set("nodeDisplay", e.NodeDisplay)
	o.Set("nodeGhost", e.NodeGhost)
	o.Set("tags", strs(e.Tags))
	o.Set("values", values)
	if e.Texture != nil {
		o.Set("texture", *e.Texture)
	}
	if e.TextureImage != nil {
		o.Set("textureImage", *e.TextureImage)
	}
	return o, nil
}
