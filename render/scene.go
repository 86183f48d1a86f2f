// Package render flattens a level into a list of draw-ready sprites.
//
// It does not draw anything itself; front ends walk Scene.Sprites in order
// and blit from the tileset and decal images the scene names.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path"

	"golang.org/x/image/colornames"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/level"
	"github.com/milk9111/ogmo3/project"
)

// SpriteKind identifies how a sprite is drawn.
type SpriteKind int

const (
	// TileSprite draws Source from tileset Tileset.
	TileSprite SpriteKind = iota
	// RectSprite fills Size with Color.
	RectSprite
	// DecalSprite draws decal image Decal, rotated and scaled about its
	// top-left corner.
	DecalSprite
)

func (k SpriteKind) String() string {
	switch k {
	case TileSprite:
		return "tile"
	case RectSprite:
		return "rect"
	case DecalSprite:
		return "decal"
	}
	return fmt.Sprintf("SpriteKind(%d)", int(k))
}

// Sprite is one draw call.
type Sprite struct {
	Kind SpriteKind
	// Layer is the name of the layer the sprite came from.
	Layer    string
	Position common.Vec2[float64]

	// Tileset indexes Scene.Tilesets and Source is the rectangle to copy
	// from it. Tile sprites only.
	Tileset int
	Source  image.Rectangle

	// Size and Color describe a filled rectangle. Rect sprites only.
	Size  common.Vec2[float64]
	Color color.RGBA

	// Decal indexes Scene.Decals. Rotation is in radians. Decal sprites only.
	Decal    int
	Rotation float64
	Scale    common.Vec2[float64]
}

// Tileset is a tileset sliced into source rectangles, indexed by tile ID.
type Tileset struct {
	Label string
	// Path is the tileset image, relative to the project.
	Path  string
	Tiles []image.Rectangle
}

// Scene is a level ready to draw.
type Scene struct {
	Width      float64
	Height     float64
	Background color.RGBA
	Tilesets   []Tileset
	// Decals are decal image paths relative to the project. Each image is
	// listed once however many decals use it.
	Decals  []string
	Sprites []Sprite
}

// Build slices the project's tilesets and turns every layer of l into
// sprites, in layer order. Layer offsets are applied to sprite positions.
func Build(p *project.Project, l *level.Level, sizes TextureSizer) (*Scene, error) {
	s := &Scene{
		Width:      l.Width,
		Height:     l.Height,
		Background: colorOr(p.BackgroundColor, colornames.White),
	}
	tilesets := make(map[string]int, len(p.Tilesets))
	for i := range p.Tilesets {
		ts := &p.Tilesets[i]
		size, err := sizes.TextureSize(ts)
		if err != nil {
			return nil, err
		}
		sliced := Tileset{Label: ts.Label, Path: ts.Path}
		for origin := range ts.TileCoords(size.X, size.Y) {
			sliced.Tiles = append(sliced.Tiles, image.Rect(origin.X, origin.Y, origin.X+ts.TileWidth, origin.Y+ts.TileHeight))
		}
		tilesets[ts.Label] = len(s.Tilesets)
		s.Tilesets = append(s.Tilesets, sliced)
	}

	b := builder{scene: s, project: p, tilesets: tilesets, decals: map[string]int{}}
	for _, layer := range l.Layers {
		if err := b.layer(layer); err != nil {
			return nil, fmt.Errorf("render: layer %q: %w", layer.Base().Name, err)
		}
	}
	return s, nil
}

type builder struct {
	scene    *Scene
	project  *project.Project
	tilesets map[string]int
	decals   map[string]int
}

func (b *builder) add(base *level.LayerBase, sp Sprite) {
	sp.Layer = base.Name
	sp.Position.X += base.OffsetX
	sp.Position.Y += base.OffsetY
	b.scene.Sprites = append(b.scene.Sprites, sp)
}

func (b *builder) tileset(label string) (int, error) {
	i, ok := b.tilesets[label]
	if !ok {
		return 0, fmt.Errorf("unknown tileset %q", label)
	}
	return i, nil
}

func (b *builder) layer(layer level.Layer) error {
	base := layer.Base()
	cell := common.V2(float64(base.GridCellWidth), float64(base.GridCellHeight))
	switch l := layer.(type) {
	case *level.TileLayer:
		ts, err := b.tileset(l.Tileset)
		if err != nil {
			return err
		}
		tiles := b.scene.Tilesets[ts].Tiles
		for tile := range l.Unpack() {
			id, ok := tile.TileID()
			if !ok {
				continue
			}
			if id < 0 || id >= len(tiles) {
				return fmt.Errorf("tile %d outside tileset %q (%d tiles)", id, l.Tileset, len(tiles))
			}
			b.add(base, Sprite{Kind: TileSprite, Position: tile.PixelPosition.Float(), Tileset: ts, Source: tiles[id]})
		}
	case *level.TileCoordsLayer:
		ts, err := b.tileset(l.Tileset)
		if err != nil {
			return err
		}
		for tile := range l.Unpack() {
			if !tile.HasCoords {
				continue
			}
			src := image.Rect(tile.PixelCoords.X, tile.PixelCoords.Y, tile.PixelCoords.X+base.GridCellWidth, tile.PixelCoords.Y+base.GridCellHeight)
			b.add(base, Sprite{Kind: TileSprite, Position: tile.PixelPosition.Float(), Tileset: ts, Source: src})
		}
	case *level.GridLayer:
		legend := b.legend(base.Name)
		for c := range l.Unpack() {
			if c.Empty() {
				continue
			}
			b.add(base, Sprite{Kind: RectSprite, Position: c.PixelPosition.Float(), Size: cell, Color: colorOr(legend[c.Value], colornames.Black)})
		}
	case *level.EntityLayer:
		for _, e := range l.Entities {
			b.add(base, b.entity(e, cell))
		}
	case *level.DecalLayer:
		toRadians := 1.0
		if !b.project.AnglesRadians {
			toRadians = math.Pi / 180
		}
		for _, d := range l.Decals {
			sp := Sprite{
				Kind:     DecalSprite,
				Position: common.V2(d.X, d.Y),
				Decal:    b.decal(path.Join(l.Folder, d.Texture)),
				Scale:    common.V2(1.0, 1.0),
			}
			if d.Rotation != nil {
				sp.Rotation = *d.Rotation * toRadians
			}
			if d.ScaleX != nil {
				sp.Scale.X = *d.ScaleX
			}
			if d.ScaleY != nil {
				sp.Scale.Y = *d.ScaleY
			}
			b.add(base, sp)
		}
	default:
		return fmt.Errorf("unsupported layer type %T", layer)
	}
	return nil
}

func (b *builder) legend(layer string) map[string]string {
	t, ok := b.project.Layer(layer)
	if !ok {
		return nil
	}
	if g, ok := t.Data.(*project.GridLayerData); ok {
		return g.Legend
	}
	return nil
}

// entity sizes an entity from its own fields, then its template, then the
// layer's cell size.
func (b *builder) entity(e level.Entity, cell common.Vec2[float64]) Sprite {
	size, origin, col := cell, common.Vec2[float64]{}, colornames.Red
	if t, ok := b.project.Entity(e.Name); ok {
		size, origin = t.Size, t.Origin
		col = colorOr(t.Color, col)
	}
	if e.Width != nil {
		size.X = *e.Width
	}
	if e.Height != nil {
		size.Y = *e.Height
	}
	if e.OriginX != nil {
		origin.X = *e.OriginX
	}
	if e.OriginY != nil {
		origin.Y = *e.OriginY
	}
	return Sprite{
		Kind:     RectSprite,
		Position: common.V2(e.X-origin.X, e.Y-origin.Y),
		Size:     size,
		Color:    col,
	}
}

func (b *builder) decal(name string) int {
	if i, ok := b.decals[name]; ok {
		return i
	}
	i := len(b.scene.Decals)
	b.decals[name] = i
	b.scene.Decals = append(b.scene.Decals, name)
	return i
}
