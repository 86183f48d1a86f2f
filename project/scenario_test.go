package project_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/level"
	"github.com/milk9111/ogmo3/project"
)

const scenarioProject = `{
	"name": "scenario",
	"levelPaths": ["."],
	"backgroundColor": "#000000ff",
	"gridColor": "#ffffffff",
	"anglesRadians": true,
	"directoryDepth": 5,
	"layerGridDefaultSize": {"x": 16, "y": 16},
	"levelDefaultSize": {"x": 32, "y": 16},
	"levelMinSize": {"x": 16, "y": 16},
	"levelMaxSize": {"x": 4096, "y": 4096},
	"levelValues": [],
	"defaultExportMode": ".json",
	"entityTags": [],
	"layers": [
		{"definition": "tile", "name": "tiles", "gridSize": {"x": 16, "y": 16}, "exportID": "1", "exportMode": 1, "arrayMode": 0, "defaultTileset": "t"}
	],
	"entities": [],
	"tilesets": [
		{"label": "t", "path": "t.png", "image": "", "tileWidth": 16, "tileHeight": 16, "tileSeparationX": 0, "tileSeparationY": 0}
	]
}`

const scenarioLevel = `{
	"width": 32, "height": 16, "offsetX": 0, "offsetY": 0,
	"layers": [
		{"name": "tiles", "_eid": "1", "offsetX": 0, "offsetY": 0,
		 "gridCellWidth": 16, "gridCellHeight": 16, "gridCellsX": 2, "gridCellsY": 1,
		 "tileset": "t", "dataCoords": [[0, 0], [-1]], "exportMode": 1, "arrayMode": 0}
	]
}`

func TestCoordsLayerAgainstTemplate(t *testing.T) {
	p, err := project.Parse([]byte(scenarioProject))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	l, err := level.Parse([]byte(scenarioLevel))
	if err != nil {
		t.Fatalf("level: %v", err)
	}

	tmpl, ok := p.Layer("tiles")
	if !ok {
		t.Fatalf("missing layer template")
	}
	data := tmpl.Data.(*project.TileLayerData)
	layer, ok := l.Layer("tiles")
	if !ok {
		t.Fatalf("missing layer")
	}
	coords, ok := layer.(*level.TileCoordsLayer)
	if !ok {
		t.Fatalf("expected *level.TileCoordsLayer, got %T", layer)
	}
	export, array := coords.Modes()
	if export != data.ExportMode || array != data.ArrayMode {
		t.Fatalf("layer modes %v/%v disagree with template %v/%v", export, array, data.ExportMode, data.ArrayMode)
	}

	var got []level.TileCoords
	for tile := range coords.Unpack() {
		got = append(got, tile)
	}
	want := []level.TileCoords{
		{HasCoords: true, GridCoords: common.V2(0, 0), PixelCoords: common.V2(0, 0)},
		{GridPosition: common.V2(1, 0), PixelPosition: common.V2(16, 0)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
}
