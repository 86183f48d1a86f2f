package level

import (
	"iter"

	"github.com/milk9111/ogmo3/common"
)

// EmptyTile is the tile ID (and first co-ord) that marks an empty tile.
const EmptyTile = -1

// EmptyCell is the grid value the editor uses for empty cells by default.
const EmptyCell = "0"

// Tile is an individual tile unpacked from a TileLayer.
type Tile struct {
	// ID is the index of the tile in the tileset. Only meaningful when HasID.
	ID    int
	HasID bool
	// GridPosition is the tile's position in grid co-ords.
	GridPosition common.Vec2[int]
	// PixelPosition is the tile's position in pixels.
	PixelPosition common.Vec2[int]
}

// TileID returns the tile's ID, or false for an empty tile.
func (t Tile) TileID() (int, bool) { return t.ID, t.HasID }

// TileCoords is an individual tile unpacked from a TileCoordsLayer.
type TileCoords struct {
	// GridCoords is the tile's cell inside the tileset. Only meaningful when HasCoords.
	GridCoords common.Vec2[int]
	// PixelCoords is the origin of the tile's source rectangle inside the tileset image.
	PixelCoords common.Vec2[int]
	HasCoords   bool
	// GridPosition and PixelPosition locate the cell inside the level.
	GridPosition  common.Vec2[int]
	PixelPosition common.Vec2[int]
}

// GridCell is an individual cell unpacked from a GridLayer. Empty cells are
// included; compare Value against EmptyCell to skip them.
type GridCell struct {
	Value         string
	GridPosition  common.Vec2[int]
	PixelPosition common.Vec2[int]
}

// Empty reports whether the cell holds EmptyCell.
func (c GridCell) Empty() bool { return c.Value == EmptyCell }

type place struct {
	grid  common.Vec2[int]
	pixel common.Vec2[int]
}

func (b *LayerBase) place(x, y int) place {
	return place{
		grid:  common.V2(x, y),
		pixel: common.V2(x*b.GridCellWidth, y*b.GridCellHeight),
	}
}

func (b *LayerBase) cellSize() common.Vec2[int] {
	return common.V2(b.GridCellWidth, b.GridCellHeight)
}

// flat walks row-major storage, wrapping every GridCellsX entries. Without a
// positive width every entry lands on row 0.
func flat[T any](b *LayerBase, data []T) iter.Seq2[place, T] {
	return func(yield func(place, T) bool) {
		w := b.GridCellsX
		for i, v := range data {
			x, y := i, 0
			if w > 0 {
				x, y = i%w, i/w
			}
			if !yield(b.place(x, y), v) {
				return
			}
		}
	}
}

// nested walks rows of storage; ragged rows are walked as stored.
func nested[T any](b *LayerBase, rows [][]T) iter.Seq2[place, T] {
	return func(yield func(place, T) bool) {
		for y, row := range rows {
			for x, v := range row {
				if !yield(b.place(x, y), v) {
					return
				}
			}
		}
	}
}

func none[T any]() iter.Seq2[place, T] {
	return func(func(place, T) bool) {}
}

func mapCells[T, C any](src iter.Seq2[place, T], cell func(place, T) C) iter.Seq[C] {
	return func(yield func(C) bool) {
		for p, v := range src {
			if !yield(cell(p, v)) {
				return
			}
		}
	}
}

// Unpack yields every tile in row-major order. The sequence may be ranged
// over any number of times.
func (l *TileLayer) Unpack() iter.Seq[Tile] {
	var src iter.Seq2[place, int]
	switch d := l.Data.(type) {
	case TileData:
		src = flat(&l.LayerBase, d)
	case TileData2D:
		src = nested(&l.LayerBase, d)
	default:
		src = none[int]()
	}
	return mapCells(src, func(p place, id int) Tile {
		return Tile{
			ID:            id,
			HasID:         id != EmptyTile,
			GridPosition:  p.grid,
			PixelPosition: p.pixel,
		}
	})
}

// Unpack yields every tile in row-major order. The sequence may be ranged
// over any number of times.
func (l *TileCoordsLayer) Unpack() iter.Seq[TileCoords] {
	var src iter.Seq2[place, []int]
	switch d := l.Data.(type) {
	case CoordData:
		src = flat(&l.LayerBase, d)
	case CoordData2D:
		src = nested(&l.LayerBase, d)
	default:
		src = none[[]int]()
	}
	size := l.cellSize()
	return mapCells(src, func(p place, coords []int) TileCoords {
		t := TileCoords{GridPosition: p.grid, PixelPosition: p.pixel}
		if len(coords) >= 2 && coords[0] != EmptyTile {
			t.HasCoords = true
			t.GridCoords = common.V2(coords[0], coords[1])
			t.PixelCoords = t.GridCoords.Mul(size)
		}
		return t
	})
}

// Unpack yields every cell in row-major order, empty cells included.
func (l *GridLayer) Unpack() iter.Seq[GridCell] {
	var src iter.Seq2[place, string]
	switch d := l.Data.(type) {
	case GridData:
		src = flat(&l.LayerBase, d)
	case GridData2D:
		src = nested(&l.LayerBase, d)
	default:
		src = none[string]()
	}
	return mapCells(src, func(p place, v string) GridCell {
		return GridCell{Value: v, GridPosition: p.grid, PixelPosition: p.pixel}
	})
}
