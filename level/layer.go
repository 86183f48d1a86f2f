package level

// Layer is one layer instance in a level. It is one of *TileLayer,
// *TileCoordsLayer, *GridLayer, *EntityLayer or *DecalLayer.
type Layer interface {
	Base() *LayerBase
	isLayer()
}

// LayerBase holds the attributes every layer carries.
type LayerBase struct {
	// Name is the name of the layer.
	Name string
	// ExportID is the unique export ID of the layer.
	ExportID string
	// OffsetX and OffsetY position the layer. Useful for chunked levels.
	OffsetX float64
	OffsetY float64
	// GridCellWidth and GridCellHeight are the size of the layer's cells in pixels.
	GridCellWidth  int
	GridCellHeight int
	// GridCellsX and GridCellsY are the number of cells on each axis.
	GridCellsX int
	GridCellsY int
}

// Base returns the shared layer attributes.
func (b *LayerBase) Base() *LayerBase { return b }

// TileLayer is a tile layer storing tileset IDs.
type TileLayer struct {
	LayerBase
	// Tileset is the name of the tileset used for this layer.
	Tileset string
	// Data is the raw tile data. Most callers want Unpack.
	Data TileStorage
}

// TileCoordsLayer is a tile layer storing tileset co-ords.
type TileCoordsLayer struct {
	LayerBase
	Tileset string
	Data    TileCoordsStorage
}

// GridLayer is a grid layer of string cells.
type GridLayer struct {
	LayerBase
	Data GridStorage
}

// EntityLayer holds entity instances.
type EntityLayer struct {
	LayerBase
	Entities []Entity
}

// DecalLayer holds decal instances.
type DecalLayer struct {
	LayerBase
	// Folder is the path containing the decal images, relative to the project.
	Folder string
	Decals []Decal
}

func (*TileLayer) isLayer()       {}
func (*TileCoordsLayer) isLayer() {}
func (*GridLayer) isLayer()       {}
func (*EntityLayer) isLayer()     {}
func (*DecalLayer) isLayer()      {}

// TileStorage is TileData or TileData2D.
type TileStorage interface{ isTileStorage() }

// TileData is a flat, row-major list of tile IDs. Empty tiles are -1.
type TileData []int

// TileData2D is a list of rows of tile IDs. Empty tiles are -1.
type TileData2D [][]int

func (TileData) isTileStorage()   {}
func (TileData2D) isTileStorage() {}

// TileCoordsStorage is CoordData or CoordData2D.
type TileCoordsStorage interface{ isTileCoordsStorage() }

// CoordData is a flat, row-major list of tileset cell co-ords. Each entry is
// [x, y], or [-1] for an empty tile. The values are cell based; multiply by
// the layer's cell size for pixels.
type CoordData [][]int

// CoordData2D is CoordData split into rows.
type CoordData2D [][][]int

func (CoordData) isTileCoordsStorage()   {}
func (CoordData2D) isTileCoordsStorage() {}

// GridStorage is GridData or GridData2D.
type GridStorage interface{ isGridStorage() }

// GridData is a flat, row-major list of grid cell values. "0" means empty
// by default.
type GridData []string

// GridData2D is GridData split into rows.
type GridData2D [][]string

func (GridData) isGridStorage()   {}
func (GridData2D) isGridStorage() {}
