package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor reads an editor colour string: "#rrggbbaa" or "#rrggbb".
// SVG colour names such as "red" are accepted too.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("render: parse colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("render: parse colour %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: parse colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// colorOr parses s, falling back to def when s is empty or malformed.
func colorOr(s string, def color.RGBA) color.RGBA {
	if s == "" {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
