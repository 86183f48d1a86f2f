package level

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/doc"
	"github.com/milk9111/ogmo3/levels"
)

const layerBase = `"name":"l","_eid":"e","offsetX":0,"offsetY":0,"gridCellWidth":16,"gridCellHeight":16,"gridCellsX":2,"gridCellsY":1`

func levelWith(layers ...string) string {
	return `{"width":32,"height":16,"offsetX":0,"offsetY":0,"layers":[` + strings.Join(layers, ",") + `]}`
}

func layer(fields string) string {
	return `{` + layerBase + `,` + fields + `}`
}

func mustParse(t *testing.T, s string) *Level {
	t.Helper()
	l, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return l
}

func ptr[T any](v T) *T { return &v }

func TestDecodeLayerVariants(t *testing.T) {
	cases := []struct {
		name   string
		fields string
		want   Layer
	}{
		{"tile ids", `"tileset":"t","data":[0,-1],"exportMode":0,"arrayMode":0`,
			&TileLayer{Tileset: "t", Data: TileData{0, -1}}},
		{"tile ids 2d", `"tileset":"t","data2D":[[0,-1]],"exportMode":0,"arrayMode":1`,
			&TileLayer{Tileset: "t", Data: TileData2D{{0, -1}}}},
		{"tile co-ords", `"tileset":"t","dataCoords":[[1,2],[-1]],"exportMode":1,"arrayMode":0`,
			&TileCoordsLayer{Tileset: "t", Data: CoordData{{1, 2}, {-1}}}},
		{"tile co-ords 2d", `"tileset":"t","dataCoords2D":[[[1,2],[-1]]],"exportMode":1,"arrayMode":1`,
			&TileCoordsLayer{Tileset: "t", Data: CoordData2D{{{1, 2}, {-1}}}}},
		{"grid", `"grid":["0","1"],"arrayMode":0`,
			&GridLayer{Data: GridData{"0", "1"}}},
		{"grid 2d", `"grid2D":[["0","1"]],"arrayMode":1`,
			&GridLayer{Data: GridData2D{{"0", "1"}}}},
		{"entities", `"entities":[]`,
			&EntityLayer{Entities: []Entity{}}},
		{"decals", `"folder":"d","decals":[]`,
			&DecalLayer{Folder: "d", Decals: []Decal{}}},
		{"tile ids win over grid", `"tileset":"t","data":[3],"grid":["1"]`,
			&TileLayer{Tileset: "t", Data: TileData{3}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := mustParse(t, levelWith(layer(c.fields)))
			if len(l.Layers) != 1 {
				t.Fatalf("expected 1 layer, got %d", len(l.Layers))
			}
			*c.want.Base() = LayerBase{Name: "l", ExportID: "e", GridCellWidth: 16, GridCellHeight: 16, GridCellsX: 2, GridCellsY: 1}
			if diff := cmp.Diff(c.want, l.Layers[0]); diff != "" {
				t.Fatalf("layer mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  error
		path  string
	}{
		{"data without tileset", levelWith(layer(`"data":[0]`)), doc.ErrNoMatchingVariant, "layers[0]"},
		{"layer not an object", levelWith(`3`), doc.ErrTypeMismatch, "layers[0]"},
		{"string cell count", levelWith(`{"name":"l","_eid":"e","offsetX":0,"offsetY":0,"gridCellWidth":16,"gridCellHeight":16,"gridCellsX":"2","gridCellsY":1,"grid":[]}`),
			doc.ErrTypeMismatch, "layers[0].gridCellsX"},
		{"fractional cell size", levelWith(`{"name":"l","_eid":"e","offsetX":0,"offsetY":0,"gridCellWidth":1.5,"gridCellHeight":16,"gridCellsX":2,"gridCellsY":1,"grid":[]}`),
			doc.ErrTypeMismatch, "layers[0].gridCellWidth"},
		{"missing name", levelWith(`{"_eid":"e","offsetX":0,"offsetY":0,"gridCellWidth":16,"gridCellHeight":16,"gridCellsX":2,"gridCellsY":1,"grid":[]}`),
			doc.ErrMissingField, "layers[0].name"},
		{"entity without x", levelWith(layer(`"entities":[{"name":"p","id":0,"_eid":"x","y":1}]`)),
			doc.ErrMissingField, "layers[0].entities[0].x"},
		{"tile id not a number", levelWith(layer(`"tileset":"t","data":[0,"1"]`)), doc.ErrTypeMismatch, "layers[0].data[1]"},
		{"co-ord with one value", levelWith(layer(`"tileset":"t","dataCoords":[[3]]`)), doc.ErrTypeMismatch, "layers[0].dataCoords[0]"},
		{"co-ord with three values", levelWith(layer(`"tileset":"t","dataCoords":[[1,2,3]]`)), doc.ErrTypeMismatch, "layers[0].dataCoords[0]"},
		{"empty co-ord", levelWith(layer(`"tileset":"t","dataCoords2D":[[[]]]`)), doc.ErrTypeMismatch, "layers[0].dataCoords2D[0][0]"},
		{"nested value", `{"width":1,"height":1,"offsetX":0,"offsetY":0,"layers":[],"values":{"a":[1]}}`, doc.ErrTypeMismatch, "values.a"},
		{"missing layers", `{"width":1,"height":1,"offsetX":0,"offsetY":0}`, doc.ErrMissingField, "layers"},
		{"root not an object", `[]`, doc.ErrTypeMismatch, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.input))
			if !errors.Is(err, c.kind) {
				t.Fatalf("expected %v, got %v", c.kind, err)
			}
			var de *doc.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *doc.DecodeError, got %T", err)
			}
			if de.Path != c.path {
				t.Fatalf("expected path %q, got %q", c.path, de.Path)
			}
		})
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"width":`)); err == nil {
		t.Fatalf("expected error")
	}
	var de *doc.DecodeError
	if _, err := Parse([]byte(`{"width":1`)); errors.As(err, &de) {
		t.Fatalf("malformed text must not report a decode error: %v", err)
	}
}

func TestDecodeEntity(t *testing.T) {
	l := mustParse(t, levelWith(layer(`"entities":[
		{"name":"plain","id":0,"_eid":"a","x":1,"y":2},
		{"name":"full","id":7,"_eid":"b","x":3.5,"y":4,"width":10,"height":20,"originX":5,"originY":6,
		 "rotation":90,"flippedX":true,"flippedY":false,"nodes":[{"x":1,"y":1}],"values":{"hp":3,"tag":"boss","on":true}}
	]`)))
	el := l.Layers[0].(*EntityLayer)
	want := []Entity{
		{Name: "plain", ID: 0, ExportID: "a", X: 1, Y: 2},
		{
			Name: "full", ID: 7, ExportID: "b", X: 3.5, Y: 4,
			Width: ptr(10.0), Height: ptr(20.0), OriginX: ptr(5.0), OriginY: ptr(6.0),
			Rotation: ptr(90.0), FlippedX: ptr(true), FlippedY: ptr(false),
			Nodes:  []common.Vec2[float64]{{X: 1, Y: 1}},
			Values: map[string]Value{"hp": Number(3), "tag": String("boss"), "on": Bool(true)},
		},
	}
	if diff := cmp.Diff(want, el.Entities, cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDecalValues(t *testing.T) {
	l := mustParse(t, levelWith(layer(`"folder":"d","decals":[
		{"x":1,"y":2,"texture":"a.png"},
		{"x":1,"y":2,"texture":"b.png","rotation":1.5,"scaleX":2,"scaleY":3,"values":{}}
	]`)))
	decals := l.Layers[0].(*DecalLayer).Decals
	if decals[0].Values != nil || decals[0].Rotation != nil {
		t.Fatalf("expected absent optionals to stay nil: %+v", decals[0])
	}
	if decals[1].Values == nil || len(decals[1].Values) != 0 {
		t.Fatalf("expected present empty values, got %#v", decals[1].Values)
	}
	if *decals[1].Rotation != 1.5 || *decals[1].ScaleY != 3 {
		t.Fatalf("unexpected decal %+v", decals[1])
	}
}

func TestLevelOptionalMembers(t *testing.T) {
	l := mustParse(t, levelWith())
	if l.OgmoVersion != "" || l.Values != nil {
		t.Fatalf("expected no version and nil values, got %q %v", l.OgmoVersion, l.Values)
	}
	out, err := l.Encode(false)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"width":32,"height":16,"offsetX":0,"offsetY":0,"layers":[]}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestEncodeOmitsAbsentOptionals(t *testing.T) {
	l := &Level{
		Width: 16, Height: 16,
		Layers: []Layer{&EntityLayer{
			LayerBase: LayerBase{Name: "e", ExportID: "x"},
			Entities:  []Entity{{Name: "p", ExportID: "a", X: 1, Y: 2}},
		}},
	}
	out, err := l.Encode(false)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"width":16,"height":16,"offsetX":0,"offsetY":0,"layers":[` +
		`{"name":"e","_eid":"x","offsetX":0,"offsetY":0,"gridCellWidth":0,"gridCellHeight":0,"gridCellsX":0,"gridCellsY":0,` +
		`"entities":[{"name":"p","id":0,"_eid":"a","x":1,"y":2}]}]}`
	if string(out) != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, out)
	}
}

func TestEncodeStorageModes(t *testing.T) {
	cases := []struct {
		name   string
		layer  Layer
		member string
		export float64
		array  float64
	}{
		{"ids", &TileLayer{Data: TileData{1}}, "data", 0, 0},
		{"ids 2d", &TileLayer{Data: TileData2D{{1}}}, "data2D", 0, 1},
		{"co-ords", &TileCoordsLayer{Data: CoordData{{-1}}}, "dataCoords", 1, 0},
		{"co-ords 2d", &TileCoordsLayer{Data: CoordData2D{{{-1}}}}, "dataCoords2D", 1, 1},
		{"grid", &GridLayer{Data: GridData{"0"}}, "grid", -1, 0},
		{"grid 2d", &GridLayer{Data: GridData2D{{"0"}}}, "grid2D", -1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o, err := encodeLayer(c.layer)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !o.Has(c.member) {
				t.Fatalf("expected member %q in %s", c.member, o)
			}
			if c.export >= 0 {
				if v, _ := o.Get("exportMode"); v != c.export {
					t.Fatalf("expected exportMode %v, got %v", c.export, v)
				}
			} else if o.Has("exportMode") {
				t.Fatalf("grid layers carry no exportMode")
			}
			if v, _ := o.Get("arrayMode"); v != c.array {
				t.Fatalf("expected arrayMode %v, got %v", c.array, v)
			}
		})
	}
}

func TestModes(t *testing.T) {
	e, a := (&TileCoordsLayer{Data: CoordData2D{}}).Modes()
	if e != common.ExportCoords || a != common.ArrayTwo {
		t.Fatalf("unexpected modes %v %v", e, a)
	}
	if a := (&GridLayer{Data: GridData{}}).ArrayMode(); a != common.ArrayOne {
		t.Fatalf("unexpected array mode %v", a)
	}
}

func TestEncodeRejectsMissingStorage(t *testing.T) {
	l := &Level{Layers: []Layer{&TileLayer{LayerBase: LayerBase{Name: "t"}}}}
	if _, err := l.Encode(false); err == nil {
		t.Fatalf("expected error for tile layer without data")
	}
}

func TestRoundTripSamples(t *testing.T) {
	for _, name := range levels.SampleLevels {
		t.Run(name, func(t *testing.T) {
			raw, err := levels.Load(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			want, err := doc.Parse(raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			for _, pretty := range []bool{false, true} {
				l, err := Parse(raw)
				if err != nil {
					t.Fatalf("decode: %v", err)
				}
				out, err := l.Encode(pretty)
				if err != nil {
					t.Fatalf("encode: %v", err)
				}
				got, err := doc.Parse(out)
				if err != nil {
					t.Fatalf("reparse: %v", err)
				}
				if !doc.Equal(want, got) {
					t.Fatalf("round trip changed the document (pretty=%v):\n%s", pretty, out)
				}
			}
		})
	}
}

func TestSampleLevel(t *testing.T) {
	l, err := LoadFS(levels.Sample(), "levels/uno.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.OgmoVersion != "3.4.0" || len(l.Layers) != 8 {
		t.Fatalf("unexpected level: version %q, %d layers", l.OgmoVersion, len(l.Layers))
	}
	layer, ok := l.Layer("coords")
	if !ok {
		t.Fatalf("missing coords layer")
	}
	n := 0
	for tile := range layer.(*TileCoordsLayer).Unpack() {
		if tile.HasCoords {
			n++
		}
	}
	if n != 4 {
		t.Fatalf("expected 4 placed tiles, got %d", n)
	}
	if _, ok := l.Layer("missing"); ok {
		t.Fatalf("expected no layer named missing")
	}
	title, ok := l.Values["title"].AsString()
	if !ok || title != "Uno <1> & co" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.json"); err == nil {
		t.Fatalf("expected error")
	}
}
