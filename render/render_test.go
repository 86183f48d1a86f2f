package render

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/level"
	"github.com/milk9111/ogmo3/levels"
	"github.com/milk9111/ogmo3/project"
)

func loadSample(t *testing.T, name string) (*project.Project, *level.Level) {
	t.Helper()
	p, err := project.LoadFS(levels.Sample(), levels.SampleProject)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	l, err := level.LoadFS(levels.Sample(), name)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	return p, l
}

func byLayer(s *Scene) map[string][]Sprite {
	out := map[string][]Sprite{}
	for _, sp := range s.Sprites {
		out[sp.Layer] = append(out[sp.Layer], sp)
	}
	return out
}

func TestBuildSample(t *testing.T) {
	p, l := loadSample(t, "levels/uno.json")
	s, err := Build(p, l, FSTextures{FS: levels.Sample()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(s.Tilesets) != 1 || len(s.Tilesets[0].Tiles) != 4 {
		t.Fatalf("expected one tileset of 4 tiles, got %+v", s.Tilesets)
	}
	counts := map[string]int{}
	for name, sprites := range byLayer(s) {
		counts[name] = len(sprites)
	}
	want := map[string]int{
		"tiles": 5, "tiles2d": 5, "coords": 4, "coords2d": 3,
		"solids": 6, "solids2d": 2, "actors": 2, "decor": 2,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("sprite counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"decals/rock.png"}, s.Decals); diff != "" {
		t.Fatalf("decals mismatch (-want +got):\n%s", diff)
	}
	if s.Background != (color.RGBA{R: 0x28, G: 0x2c, B: 0x34, A: 0xff}) {
		t.Fatalf("unexpected background %v", s.Background)
	}
}

func TestBuildTileSprites(t *testing.T) {
	p, l := loadSample(t, "levels/uno.json")
	s, err := Build(p, l, EmbeddedTextures{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	layers := byLayer(s)

	// tiles: [0, 1, -1, 3, 2, ...] four wide; the fourth sprite is ID 2 at (0, 16).
	got := layers["tiles"][3]
	want := Sprite{Kind: TileSprite, Layer: "tiles", Position: common.V2(0.0, 16.0), Source: image.Rect(0, 16, 16, 32)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tile sprite mismatch (-want +got):\n%s", diff)
	}

	// coords: [1, 1] is the sixth cell, at (16, 16).
	got = layers["coords"][3]
	want = Sprite{Kind: TileSprite, Layer: "coords", Position: common.V2(16.0, 16.0), Source: image.Rect(16, 16, 32, 32)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("co-ords sprite mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRectSprites(t *testing.T) {
	p, l := loadSample(t, "levels/uno.json")
	s, err := Build(p, l, EmbeddedTextures{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	layers := byLayer(s)

	red := color.RGBA{R: 0xff, A: 0xff}
	if c := layers["solids2d"][1]; c.Color != red || c.Position != common.V2(48.0, 16.0) {
		t.Fatalf("unexpected grid sprite %+v", c)
	}
	if c := layers["solids"][0]; c.Color != (color.RGBA{A: 0xff}) || c.Size != common.V2(16.0, 16.0) {
		t.Fatalf("unexpected grid sprite %+v", c)
	}

	// The player is positioned by its origin and sized by its template.
	player := layers["actors"][0]
	want := Sprite{Kind: RectSprite, Layer: "actors", Position: common.V2(0.0, 0.0), Size: common.V2(16.0, 16.0), Color: red}
	if diff := cmp.Diff(want, player); diff != "" {
		t.Fatalf("player sprite mismatch (-want +got):\n%s", diff)
	}
	platform := layers["actors"][1]
	if platform.Size != common.V2(24.0, 8.0) || platform.Position != common.V2(32.0, 16.0) {
		t.Fatalf("unexpected platform sprite %+v", platform)
	}
}

func TestBuildDecals(t *testing.T) {
	p, l := loadSample(t, "levels/uno.json")
	s, err := Build(p, l, EmbeddedTextures{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	d := byLayer(s)["decor"][0]
	if math.Abs(d.Rotation-math.Pi/2) > 1e-9 {
		t.Fatalf("expected 90 degrees as radians, got %v", d.Rotation)
	}
	if d.Scale != common.V2(1.0, 2.0) {
		t.Fatalf("unexpected scale %v", d.Scale)
	}

	p.AnglesRadians = true
	s, err = Build(p, l, EmbeddedTextures{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if r := byLayer(s)["decor"][0].Rotation; r != 90 {
		t.Fatalf("expected rotation kept as radians, got %v", r)
	}
}

func TestBuildDefaultsAndOffsets(t *testing.T) {
	p, l := loadSample(t, "levels/dos.json")
	l.Layers[1].Base().OffsetX = 100
	s, err := Build(p, l, EmbeddedTextures{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	d := byLayer(s)["decor"][0]
	want := Sprite{Kind: DecalSprite, Layer: "decor", Position: common.V2(104.0, 4.0), Scale: common.V2(1.0, 1.0)}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Fatalf("decal sprite mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name  string
		layer level.Layer
		want  string
	}{
		{"unknown tileset", &level.TileLayer{LayerBase: level.LayerBase{Name: "t", GridCellsX: 1}, Tileset: "nope", Data: level.TileData{0}}, "unknown tileset"},
		{"tile out of range", &level.TileLayer{LayerBase: level.LayerBase{Name: "t", GridCellsX: 1}, Tileset: "tiles", Data: level.TileData{4}}, "outside tileset"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, _ := loadSample(t, "levels/dos.json")
			_, err := Build(p, &level.Level{Layers: []level.Layer{c.layer}}, EmbeddedTextures{})
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestTextureSizers(t *testing.T) {
	p, _ := loadSample(t, "levels/dos.json")
	ts := &p.Tilesets[0]
	for name, sizer := range map[string]TextureSizer{
		"fs":       FSTextures{FS: levels.Sample()},
		"embedded": EmbeddedTextures{},
	} {
		size, err := sizer.TextureSize(ts)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if size != image.Pt(32, 32) {
			t.Fatalf("%s: expected 32x32, got %v", name, size)
		}
	}
	img, err := DecodeTilesetImage(ts)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if _, err := (EmbeddedTextures{}).TextureSize(&project.Tileset{Label: "x"}); err == nil {
		t.Fatalf("expected error for a tileset without an embedded image")
	}
	if _, err := LoadImage(levels.Sample(), "decals/rock.png"); err != nil {
		t.Fatalf("load decal: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff000080", color.RGBA{R: 0xff, A: 0x80}, false},
		{"#00ff00", color.RGBA{G: 0xff, A: 0xff}, false},
		{"Blue", color.RGBA{B: 0xff, A: 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
		{"nocolour", color.RGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
