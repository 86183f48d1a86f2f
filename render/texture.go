package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/milk9111/ogmo3/project"
)

// TextureSizer reports the pixel size of a tileset's image. Projects do not
// record it, and slicing a tileset needs it.
type TextureSizer interface {
	TextureSize(ts *project.Tileset) (image.Point, error)
}

// FSTextures reads tileset images from a project directory.
type FSTextures struct {
	FS fs.FS
}

// TextureSize implements TextureSizer.
func (t FSTextures) TextureSize(ts *project.Tileset) (image.Point, error) {
	b, err := fs.ReadFile(t.FS, path.Clean(ts.Path))
	if err != nil {
		return image.Point{}, fmt.Errorf("render: read tileset %q: %w", ts.Label, err)
	}
	return configSize(b, ts.Label)
}

// EmbeddedTextures reads tileset images from the copy the editor embeds in
// the project file.
type EmbeddedTextures struct{}

// TextureSize implements TextureSizer.
func (EmbeddedTextures) TextureSize(ts *project.Tileset) (image.Point, error) {
	b, err := decodeDataURI(ts.Image)
	if err != nil {
		return image.Point{}, fmt.Errorf("render: tileset %q: %w", ts.Label, err)
	}
	return configSize(b, ts.Label)
}

func configSize(b []byte, label string) (image.Point, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return image.Point{}, fmt.Errorf("render: decode tileset %q: %w", label, err)
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}

// DecodeTilesetImage decodes the image embedded in a tileset.
func DecodeTilesetImage(ts *project.Tileset) (image.Image, error) {
	b, err := decodeDataURI(ts.Image)
	if err != nil {
		return nil, fmt.Errorf("render: tileset %q: %w", ts.Label, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode tileset %q: %w", ts.Label, err)
	}
	return img, nil
}

// LoadImage decodes an image file from fsys.
func LoadImage(fsys fs.FS, name string) (image.Image, error) {
	b, err := fs.ReadFile(fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("render: read %s: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", name, err)
	}
	return img, nil
}

// decodeDataURI returns the payload of a base64 data URI. A bare base64
// string is accepted too.
func decodeDataURI(uri string) ([]byte, error) {
	payload := uri
	if rest, ok := strings.CutPrefix(uri, "data:"); ok {
		meta, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("unsupported data URI %.32q", uri)
		}
		payload = data
	}
	if payload == "" {
		return nil, fmt.Errorf("no embedded image")
	}
	return base64.StdEncoding.DecodeString(payload)
}
