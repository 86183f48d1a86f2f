package level

import (
	"fmt"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/doc"
)

// storage is the on-disk form of a layer's cell data: the member it is
// written under, its payload and the mode flags the editor writes with it.
type storage struct {
	field   string
	payload []any
	export  common.ExportMode
	array   common.ArrayMode
}

func ints(s []int) []any {
	return doc.Array(s, func(v int) any { return float64(v) })
}

func strs(s []string) []any {
	return doc.Array(s, func(v string) any { return v })
}

func rows[T any](s [][]T, row func([]T) []any) []any {
	return doc.Array(s, func(r []T) any { return row(r) })
}

func coords(s [][]int) []any {
	return rows(s, ints)
}

// encodeStorage maps in-memory storage back to the member name and mode flags
// the editor writes for it. It is the inverse of the layer shape table in
// decode.go; the two must change together.
func encodeStorage(data any) (storage, error) {
	switch d := data.(type) {
	case TileData:
		return storage{"data", ints(d), common.ExportIDs, common.ArrayOne}, nil
	case TileData2D:
		return storage{"data2D", rows(d, ints), common.ExportIDs, common.ArrayTwo}, nil
	case CoordData:
		return storage{"dataCoords", coords(d), common.ExportCoords, common.ArrayOne}, nil
	case CoordData2D:
		return storage{"dataCoords2D", rows(d, coords), common.ExportCoords, common.ArrayTwo}, nil
	case GridData:
		return storage{"grid", strs(d), 0, common.ArrayOne}, nil
	case GridData2D:
		return storage{"grid2D", rows(d, strs), 0, common.ArrayTwo}, nil
	}
	return storage{}, fmt.Errorf("no storage (%T)", data)
}

func encodeBase(b *LayerBase) *doc.Object {
	o := doc.NewObject()
	o.Set("name", b.Name)
	o.Set("_eid", b.ExportID)
	o.Set("offsetX", b.OffsetX)
	o.Set("offsetY", b.OffsetY)
	o.Set("gridCellWidth", b.GridCellWidth)
	o.Set("gridCellHeight", b.GridCellHeight)
	o.Set("gridCellsX", b.GridCellsX)
	o.Set("gridCellsY", b.GridCellsY)
	return o
}

func encodeLayer(layer Layer) (*doc.Object, error) {
	if layer == nil {
		return nil, fmt.Errorf("nil layer")
	}
	o := encodeBase(layer.Base())
	switch l := layer.(type) {
	case *TileLayer:
		s, err := encodeStorage(l.Data)
		if err != nil {
			return nil, fmt.Errorf("tile layer %q: %w", l.Name, err)
		}
		o.Set("tileset", l.Tileset)
		o.Set(s.field, s.payload)
		o.Set("exportMode", int(s.export))
		o.Set("arrayMode", int(s.array))
	case *TileCoordsLayer:
		s, err := encodeStorage(l.Data)
		if err != nil {
			return nil, fmt.Errorf("tile co-ords layer %q: %w", l.Name, err)
		}
		o.Set("tileset", l.Tileset)
		o.Set(s.field, s.payload)
		o.Set("exportMode", int(s.export))
		o.Set("arrayMode", int(s.array))
	case *GridLayer:
		s, err := encodeStorage(l.Data)
		if err != nil {
			return nil, fmt.Errorf("grid layer %q: %w", l.Name, err)
		}
		o.Set(s.field, s.payload)
		o.Set("arrayMode", int(s.array))
	case *EntityLayer:
		o.Set("entities", doc.Array(l.Entities, func(e Entity) any { return encodeEntity(e) }))
	case *DecalLayer:
		o.Set("folder", l.Folder)
		o.Set("decals", doc.Array(l.Decals, func(d Decal) any { return encodeDecal(d) }))
	default:
		return nil, fmt.Errorf("unknown layer type %T", layer)
	}
	return o, nil
}

// Modes returns the export and array mode a tile layer's storage is written
// with.
func (l *TileLayer) Modes() (common.ExportMode, common.ArrayMode) {
	s, _ := encodeStorage(l.Data)
	return s.export, s.array
}

// Modes returns the export and array mode a tile co-ords layer's storage is
// written with.
func (l *TileCoordsLayer) Modes() (common.ExportMode, common.ArrayMode) {
	s, _ := encodeStorage(l.Data)
	return s.export, s.array
}

// ArrayMode returns the array mode a grid layer's storage is written with.
func (l *GridLayer) ArrayMode() common.ArrayMode {
	s, _ := encodeStorage(l.Data)
	return s.array
}
