package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/ogmo3/common"
	"github.com/milk9111/ogmo3/level"
	"github.com/milk9111/ogmo3/loader"
	"github.com/milk9111/ogmo3/project"
	"github.com/milk9111/ogmo3/render"
)

const panSpeed = 8

type Game struct {
	cfg     Config
	log     logr.Logger
	dir     string
	name    string
	loader  *loader.Loader
	watcher *loader.Watcher
	tex     *textures

	project *project.Project
	levels  []string
	current int
	level   *level.Level
	scene   *render.Scene

	pixel  *ebiten.Image
	face   ebtext.Face
	picker *ebitenui.UI
	camera common.Vec2[float64]
	zoom   float64

	showPicker bool
	clipboard  bool
	status     string
}

func NewGame(cfg Config, log logr.Logger) (*Game, error) {
	dir, name := filepath.Split(cfg.Project)
	if dir == "" {
		dir = "."
	}
	ld, err := loader.NewDir(dir, loader.WithLogger(log.WithName("loader")))
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		log:    log,
		dir:    dir,
		name:   name,
		loader: ld,
		tex:    newTextures(ld.FS()),
		pixel:  ebiten.NewImage(1, 1),
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		zoom:   cfg.Zoom,
	}
	g.pixel.Fill(color.White)
	g.clipboard = clipboard.Init() == nil

	if err := g.loadProject(); err != nil {
		ld.Close()
		return nil, err
	}
	if cfg.Level != "" {
		g.current = -1
		for i, n := range g.levels {
			if n == filepath.ToSlash(filepath.Clean(cfg.Level)) {
				g.current = i
			}
		}
		if g.current < 0 {
			g.levels = append(g.levels, filepath.ToSlash(cfg.Level))
			g.current = len(g.levels) - 1
		}
	}
	if len(g.levels) == 0 {
		ld.Close()
		return nil, fmt.Errorf("ogmoview: project %s has no levels", cfg.Project)
	}
	if err := g.loadLevel(); err != nil {
		ld.Close()
		return nil, err
	}

	if cfg.Watch {
		if err := g.watch(); err != nil {
			log.Error(err, "hot reload disabled")
		}
	}
	return g, nil
}

func (g *Game) loadProject() error {
	p, err := g.loader.Project(g.name)
	if err != nil {
		return err
	}
	names, err := g.loader.LevelNames(p)
	if err != nil {
		return err
	}
	g.project = p
	g.levels = names
	g.picker = newLevelPicker(names, g.face, func(i int) {
		g.current = i
		g.showPicker = false
		g.reportErr(g.loadLevel())
	})
	return nil
}

func (g *Game) loadLevel() error {
	name := g.levels[g.current]
	l, err := g.loader.Level(name)
	if err != nil {
		return err
	}
	scene, err := render.Build(g.project, l, g.tex)
	if err != nil {
		return err
	}
	g.level = l
	g.scene = scene
	g.status = name
	g.log.V(1).Info("showing level", "level", name, "sprites", len(scene.Sprites))
	return nil
}

func (g *Game) watch() error {
	dirs := map[string]bool{g.dir: true}
	for _, name := range g.levels {
		dirs[filepath.Join(g.dir, filepath.Dir(filepath.FromSlash(name)))] = true
	}
	list := make([]string, 0, len(dirs))
	for d := range dirs {
		list = append(list, d)
	}
	w, err := loader.NewWatcher(list...)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

// pollWatcher reloads whatever changed since the last frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case changed, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			rel, err := filepath.Rel(g.dir, changed)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			g.log.Info("reloading", "file", rel)
			g.loader.Invalidate(rel)
			if rel == g.name {
				g.reportErr(g.loadProject())
			}
			for _, ts := range g.project.Tilesets {
				g.tex.forget(ts.Path)
			}
			g.reportErr(g.loadLevel())
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Error(err, "watch")
		default:
			return
		}
	}
}

func (g *Game) reportErr(err error) {
	if err != nil {
		g.log.Error(err, "reload failed")
		g.status = err.Error()
	}
}

func (g *Game) step(delta int) {
	g.current = (g.current + delta + len(g.levels)) % len(g.levels)
	g.reportErr(g.loadLevel())
}

// copyLevel puts the current level, re-encoded, on the clipboard.
func (g *Game) copyLevel() {
	if !g.clipboard {
		g.status = "clipboard unavailable"
		return
	}
	b, err := g.level.Encode(true)
	if err != nil {
		g.reportErr(err)
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	g.status = "copied " + g.levels[g.current]
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showPicker = !g.showPicker
	}
	if g.showPicker {
		g.picker.Update()
		return nil
	}

	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.camera.X -= panSpeed / g.zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.camera.X += panSpeed / g.zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.camera.Y -= panSpeed / g.zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.camera.Y += panSpeed / g.zoom
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.zoom *= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && g.zoom > 0.25 {
		g.zoom /= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.step(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.loader.Invalidate(g.levels[g.current])
		g.reportErr(g.loadLevel())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyLevel()
	}
	return nil
}

func (g *Game) view() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-g.camera.X, -g.camera.Y)
	m.Scale(g.zoom, g.zoom)
	return m
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene == nil {
		return
	}
	screen.Fill(g.scene.Background)
	view := g.view()

	for _, sp := range g.scene.Sprites {
		op := &ebiten.DrawImageOptions{}
		switch sp.Kind {
		case render.TileSprite:
			ts := &g.project.Tilesets[sp.Tileset]
			img, err := g.tex.tileset(ts)
			if err != nil {
				continue
			}
			sub, ok := img.SubImage(sp.Source).(*ebiten.Image)
			if !ok {
				continue
			}
			op.GeoM.Translate(sp.Position.X, sp.Position.Y)
			op.GeoM.Concat(view)
			screen.DrawImage(sub, op)
		case render.RectSprite:
			op.GeoM.Scale(sp.Size.X, sp.Size.Y)
			op.GeoM.Translate(sp.Position.X, sp.Position.Y)
			op.GeoM.Concat(view)
			op.ColorScale.ScaleWithColor(sp.Color)
			screen.DrawImage(g.pixel, op)
		case render.DecalSprite:
			img, err := g.tex.decal(g.scene.Decals[sp.Decal])
			if err != nil {
				continue
			}
			op.GeoM.Scale(sp.Scale.X, sp.Scale.Y)
			op.GeoM.Rotate(sp.Rotation)
			op.GeoM.Translate(sp.Position.X, sp.Position.Y)
			op.GeoM.Concat(view)
			screen.DrawImage(img, op)
		}
	}
	if g.cfg.Grid != "" {
		g.drawGrid(screen, view)
	}

	hud := fmt.Sprintf("%s  %.0fx%.0f  zoom %.2g  FPS %.0f\n[tab] levels  [n/p] next/prev  [r] reload  [c] copy",
		g.status, g.scene.Width, g.scene.Height, g.zoom, ebiten.ActualFPS())
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	ebtext.Draw(screen, hud, g.face, op)

	if g.showPicker {
		g.picker.Draw(screen)
	}
}

// drawGrid outlines the level's cells using the first tile layer's cell size.
func (g *Game) drawGrid(screen *ebiten.Image, view ebiten.GeoM) {
	c, err := render.ParseColor(g.cfg.Grid)
	if err != nil {
		return
	}
	var base *level.LayerBase
	for _, l := range g.level.Layers {
		switch l.(type) {
		case *level.TileLayer, *level.TileCoordsLayer, *level.GridLayer:
			base = l.Base()
		}
		if base != nil {
			break
		}
	}
	if base == nil || base.GridCellWidth <= 0 || base.GridCellHeight <= 0 {
		return
	}
	line := func(x, y, w, h float64) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w, h)
		op.GeoM.Translate(x, y)
		op.GeoM.Concat(view)
		op.ColorScale.ScaleWithColor(c)
		screen.DrawImage(g.pixel, op)
	}
	thin := 1 / g.zoom
	for x := 0.0; x <= g.scene.Width; x += float64(base.GridCellWidth) {
		line(x+base.OffsetX, base.OffsetY, thin, g.scene.Height)
	}
	for y := 0.0; y <= g.scene.Height; y += float64(base.GridCellHeight) {
		line(base.OffsetX, y+base.OffsetY, g.scene.Width, thin)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Close stops hot reload and releases the loader.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.loader.Close()
}
