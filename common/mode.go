package common

import "fmt"

// ExportMode defines whether tile data is stored as IDs or co-ords.
type ExportMode int

const (
	// ExportIDs stores tiles as tileset indices, counting left to right, top to bottom.
	ExportIDs ExportMode = 0
	// ExportCoords stores tiles as tileset-relative cell co-ordinates.
	ExportCoords ExportMode = 1
)

func (m ExportMode) String() string {
	switch m {
	case ExportIDs:
		return "ids"
	case ExportCoords:
		return "coords"
	}
	return fmt.Sprintf("ExportMode(%d)", int(m))
}

// Valid reports whether m is one of the known export modes.
func (m ExportMode) Valid() bool {
	return m == ExportIDs || m == ExportCoords
}

// ArrayMode defines whether tile or grid data is stored as a 1D or 2D array.
type ArrayMode int

const (
	// ArrayOne stores cells in a flat, row-major array.
	ArrayOne ArrayMode = 0
	// ArrayTwo stores cells as an array of rows.
	ArrayTwo ArrayMode = 1
)

func (m ArrayMode) String() string {
	switch m {
	case ArrayOne:
		return "1d"
	case ArrayTwo:
		return "2d"
	}
	return fmt.Sprintf("ArrayMode(%d)", int(m))
}

// Valid reports whether m is one of the known array modes.
func (m ArrayMode) Valid() bool {
	return m == ArrayOne || m == ArrayTwo
}
