package level

import (
	"github.com/milk9111/ogmo3/doc"
)

// Layer records carry no type tag, so the variant is picked by which
// payload member is present. The first matching shape wins:
// tile IDs, then tile co-ords, then grid, entity and decal layers.
const (
	shapeTileData = iota
	shapeTileData2D
	shapeCoordData
	shapeCoordData2D
	shapeGrid
	shapeGrid2D
	shapeEntity
	shapeDecal
)

var layerShapes = []doc.Shape{
	shapeTileData:    {Name: "tile (data)", Fields: []doc.Field{{Name: "tileset", Kind: doc.KindString}, {Name: "data", Kind: doc.KindArray}}},
	shapeTileData2D:  {Name: "tile (data2D)", Fields: []doc.Field{{Name: "tileset", Kind: doc.KindString}, {Name: "data2D", Kind: doc.KindArray}}},
	shapeCoordData:   {Name: "tile co-ords (dataCoords)", Fields: []doc.Field{{Name: "tileset", Kind: doc.KindString}, {Name: "dataCoords", Kind: doc.KindArray}}},
	shapeCoordData2D: {Name: "tile co-ords (dataCoords2D)", Fields: []doc.Field{{Name: "tileset", Kind: doc.KindString}, {Name: "dataCoords2D", Kind: doc.KindArray}}},
	shapeGrid:        {Name: "grid (grid)", Fields: []doc.Field{{Name: "grid", Kind: doc.KindArray}}},
	shapeGrid2D:      {Name: "grid (grid2D)", Fields: []doc.Field{{Name: "grid2D", Kind: doc.KindArray}}},
	shapeEntity:      {Name: "entity", Fields: []doc.Field{{Name: "entities", Kind: doc.KindArray}}},
	shapeDecal:       {Name: "decal", Fields: []doc.Field{{Name: "decals", Kind: doc.KindArray}, {Name: "folder", Kind: doc.KindString}}},
}

func decodeLayer(v any, path string) (Layer, error) {
	shape, err := doc.Match(v, path, layerShapes)
	if err != nil {
		return nil, err
	}
	r, err := doc.NewRecord(v, path)
	if err != nil {
		return nil, err
	}
	base := LayerBase{
		Name:           r.String("name"),
		ExportID:       r.String("_eid"),
		OffsetX:        r.Float("offsetX"),
		OffsetY:        r.Float("offsetY"),
		GridCellWidth:  r.Int("gridCellWidth"),
		GridCellHeight: r.Int("gridCellHeight"),
		GridCellsX:     r.Int("gridCellsX"),
		GridCellsY:     r.Int("gridCellsY"),
	}

	var layer Layer
	switch shape {
	case shapeTileData:
		layer = &TileLayer{LayerBase: base, Tileset: r.String("tileset"), Data: TileData(doc.List(r, "data", doc.AsInt))}
	case shapeTileData2D:
		layer = &TileLayer{LayerBase: base, Tileset: r.String("tileset"), Data: TileData2D(doc.List(r, "data2D", doc.ListOf(doc.AsInt)))}
	case shapeCoordData:
		layer = &TileCoordsLayer{LayerBase: base, Tileset: r.String("tileset"), Data: CoordData(doc.List(r, "dataCoords", asCoord))}
	case shapeCoordData2D:
		layer = &TileCoordsLayer{LayerBase: base, Tileset: r.String("tileset"), Data: CoordData2D(doc.List(r, "dataCoords2D", doc.ListOf(asCoord)))}
	case shapeGrid:
		layer = &GridLayer{LayerBase: base, Data: GridData(doc.List(r, "grid", doc.AsString))}
	case shapeGrid2D:
		layer = &GridLayer{LayerBase: base, Data: GridData2D(doc.List(r, "grid2D", doc.ListOf(doc.AsString)))}
	case shapeEntity:
		el := &EntityLayer{LayerBase: base}
		el.Entities = doc.Records(r, "entities", decodeEntity)
		layer = el
	case shapeDecal:
		dl := &DecalLayer{LayerBase: base, Folder: r.String("folder")}
		dl.Decals = doc.Records(r, "decals", decodeDecal)
		layer = dl
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return layer, nil
}

// asCoord reads one co-ord cell: [x, y], or a cell starting with -1 for an
// empty tile.
func asCoord(v any, path string) ([]int, error) {
	arr, err := doc.AsArray(v, path)
	if err != nil {
		return nil, err
	}
	coords, err := doc.Elems(arr, path, doc.AsInt)
	if err != nil {
		return nil, err
	}
	switch {
	case len(coords) == 0:
		return nil, doc.Invalid(path, "empty tile co-ords")
	case coords[0] != EmptyTile && len(coords) != 2:
		return nil, doc.Invalid(path, "expected [x, y] tile co-ords, got %d values", len(coords))
	}
	return coords, nil
}

func decodeLevel(v any) (*Level, error) {
	r, err := doc.NewRecord(v, "")
	if err != nil {
		return nil, err
	}
	l := &Level{
		Width:   r.Float("width"),
		Height:  r.Float("height"),
		OffsetX: r.Float("offsetX"),
		OffsetY: r.Float("offsetY"),
	}
	if s := r.OptString("ogmoVersion"); s != nil {
		l.OgmoVersion = *s
	}
	l.Layers = doc.List(r, "layers", decodeLayer)
	l.Values = decodeValues(r, "values")
	if err := r.Err(); err != nil {
		return nil, err
	}
	return l, nil
}
