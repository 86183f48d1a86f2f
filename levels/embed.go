// Package levels bundles a sample Ogmo project and its levels.
package levels

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SampleProject is the project file inside Sample.
const SampleProject = "sample.ogmo"

// SampleLevels lists the level files inside Sample, in play order.
var SampleLevels = []string{
	"levels/uno.json",
	"levels/dos.json",
}

//go:embed sample
var SampleFS embed.FS

// Sample returns the sample project tree rooted at its project directory.
func Sample() fs.FS {
	sub, err := fs.Sub(SampleFS, "sample")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load reads a sample file, preferring a copy on disk under levels/sample so
// edits show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanSamplePath(name)
	if data, err := os.ReadFile(diskSamplePath(clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(Sample(), clean)
}

// ModTime returns the modification time of the on-disk copy of name.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskSamplePath(cleanSamplePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanSamplePath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/sample/"); ok {
		return after
	}
	if after, ok := strings.CutPrefix(s, "sample/"); ok {
		return after
	}
	return s
}

func diskSamplePath(clean string) string {
	return filepath.Join("levels", "sample", filepath.FromSlash(clean))
}
