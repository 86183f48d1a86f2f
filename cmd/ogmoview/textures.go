package main

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/ogmo3/project"
	"github.com/milk9111/ogmo3/render"
)

// textures caches the images a scene draws from, keyed by project-relative
// path.
type textures struct {
	fsys   fs.FS
	images map[string]*ebiten.Image
}

func newTextures(fsys fs.FS) *textures {
	return &textures{fsys: fsys, images: map[string]*ebiten.Image{}}
}

func (t *textures) register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	t.images[key] = img
}

func (t *textures) get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return t.images[key]
}

// forget drops a cached image so the next lookup reads it again.
func (t *textures) forget(key string) {
	if img, ok := t.images[key]; ok {
		img.Deallocate()
		delete(t.images, key)
	}
}

// tileset loads a tileset's image from disk, falling back to the copy
// embedded in the project.
func (t *textures) tileset(ts *project.Tileset) (*ebiten.Image, error) {
	if img := t.get(ts.Path); img != nil {
		return img, nil
	}
	src, err := render.LoadImage(t.fsys, ts.Path)
	if err != nil {
		embedded, embErr := render.DecodeTilesetImage(ts)
		if embErr != nil {
			return nil, fmt.Errorf("tileset %q: %w", ts.Label, err)
		}
		src = embedded
	}
	img := ebiten.NewImageFromImage(src)
	t.register(ts.Path, img)
	return img, nil
}

// TextureSize implements render.TextureSizer.
func (t *textures) TextureSize(ts *project.Tileset) (image.Point, error) {
	img, err := t.tileset(ts)
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}

func (t *textures) decal(name string) (*ebiten.Image, error) {
	if img := t.get(name); img != nil {
		return img, nil
	}
	src, err := render.LoadImage(t.fsys, name)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	t.register(name, img)
	return img, nil
}
