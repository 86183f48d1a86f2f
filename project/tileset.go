package project

import (
	"iter"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/doc"
)

// Tileset is a tileset image sliced into equally sized tiles.
type Tileset struct {
	Label string
	// Path is the tileset image, relative to the project file.
	Path string
	// Image is the tileset image encoded as a base64 data URI.
	Image      string
	TileWidth  int
	TileHeight int
	// TileSeparationX and TileSeparationY are the empty pixels between
	// neighbouring tiles.
	TileSeparationX int
	TileSeparationY int
}

// TileCoords yields the top-left pixel of every tile in the tileset, row by
// row. The project does not record the image's size, so the caller passes
// the size of the texture it loaded. A non-positive step yields nothing.
func (t *Tileset) TileCoords(textureWidth, textureHeight int) iter.Seq[common.Vec2[int]] {
	stepX := t.TileWidth + t.TileSeparationX
	stepY := t.TileHeight + t.TileSeparationY
	return func(yield func(common.Vec2[int]) bool) {
		if stepX <= 0 || stepY <= 0 {
			return
		}
		tilesX := textureWidth / stepX
		tilesY := textureHeight / stepY
		for y := range tilesY {
			for x := range tilesX {
				if !yield(common.V2(x*stepX, y*stepY)) {
					return
				}
			}
		}
	}
}

// TileCount returns the number of tiles a texture of the given size holds.
func (t *Tileset) TileCount(textureWidth, textureHeight int) int {
	stepX := t.TileWidth + t.TileSeparationX
	stepY := t.TileHeight + t.TileSeparationY
	if stepX <= 0 || stepY <= 0 {
		return 0
	}
	return max(textureWidth/stepX, 0) * max(textureHeight/stepY, 0)
}

func decodeTileset(r *doc.Record) Tileset {
	return Tileset{
		Label:           r.String("label"),
		Path:            r.String("path"),
		Image:           r.String("image"),
		TileWidth:       r.Int("tileWidth"),
		TileHeight:      r.Int("tileHeight"),
		TileSeparationX: r.Int("tileSeparationX"),
		TileSeparationY: r.Int("tileSeparationY"),
	}
}

func encodeTileset(t Tileset) *doc.Object {
	o := doc.NewObject()
	o.Set("label", t.Label)
	o.Set("path", t.Path)
	o.Set("image", t.Image)
	o.Set("tileWidth", t.TileWidth)
	o.Set("tileHeight", t.TileHeight)
	o.Set("tileSeparationX", t.TileSeparationX)
	o.Set("tileSeparationY", t.TileSeparationY)
	return o
}
