// Package loader reads Ogmo projects and levels from a directory, caching
// the decoded documents until their files change.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/go-logr/logr"

	"github.com/milk9111/ogmo3/level"
	"github.com/milk9111/ogmo3/project"
)

// SupportedVersions is the range of editor versions whose documents this
// module understands. Projects outside it are still loaded, with a warning.
const SupportedVersions = ">=3.0.0 <4.0.0"

const defaultCacheSize = 64

// Loader reads documents from a file system. Decoded models are shared
// between callers and must not be modified.
type Loader struct {
	fsys      fs.FS
	log       logr.Logger
	cacheSize int64
	supported semver.Range
	projects  *ristretto.Cache[string, *project.Project]
	levels    *ristretto.Cache[string, *level.Level]
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithCacheSize sets how many decoded documents of each type are kept.
func WithCacheSize(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.cacheSize = n
		}
	}
}

// New returns a Loader reading from fsys.
func New(fsys fs.FS, opts ...Option) (*Loader, error) {
	l := &Loader{
		fsys:      fsys,
		log:       logr.Discard(),
		cacheSize: defaultCacheSize,
		supported: semver.MustParseRange(SupportedVersions),
	}
	for _, opt := range opts {
		opt(l)
	}

	var err error
	if l.projects, err = newCache[*project.Project](l.cacheSize); err != nil {
		return nil, fmt.Errorf("loader: project cache: %w", err)
	}
	if l.levels, err = newCache[*level.Level](l.cacheSize); err != nil {
		l.projects.Close()
		return nil, fmt.Errorf("loader: level cache: %w", err)
	}
	return l, nil
}

// NewDir returns a Loader reading from the directory dir.
func NewDir(dir string, opts ...Option) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("loader: open %s: not a directory", dir)
	}
	return New(os.DirFS(dir), opts...)
}

func newCache[V any](size int64) (*ristretto.Cache[string, V], error) {
	return ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters:        size * 10,
		MaxCost:            size,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
}

// Project returns the decoded project file name.
func (l *Loader) Project(name string) (*project.Project, error) {
	name = clean(name)
	if p, ok := l.projects.Get(name); ok {
		l.log.V(1).Info("cache hit", "project", name)
		return p, nil
	}
	l.log.V(1).Info("cache miss", "project", name)
	p, err := project.LoadFS(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	l.checkVersion(name, p)
	l.projects.Set(name, p, 1)
	l.projects.Wait()
	return p, nil
}

// Level returns the decoded level file name.
func (l *Loader) Level(name string) (*level.Level, error) {
	name = clean(name)
	if lv, ok := l.levels.Get(name); ok {
		l.log.V(1).Info("cache hit", "level", name)
		return lv, nil
	}
	l.log.V(1).Info("cache miss", "level", name)
	lv, err := level.LoadFS(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	l.levels.Set(name, lv, 1)
	l.levels.Wait()
	return lv, nil
}

// FS returns the file system documents are read from.
func (l *Loader) FS() fs.FS { return l.fsys }

// Invalidate drops any cached document read from name.
func (l *Loader) Invalidate(name string) {
	name = clean(name)
	l.log.V(1).Info("invalidate", "file", name)
	l.projects.Del(name)
	l.levels.Del(name)
}

// LevelNames lists the level files of p, searching its level paths no
// deeper than its directory depth. Names are relative to the loader's root,
// which must be the project's directory, and sorted.
func (l *Loader) LevelNames(p *project.Project) ([]string, error) {
	ext := p.DefaultExportMode
	if ext == "" {
		ext = ".json"
	}
	seen := map[string]bool{}
	var names []string
	for _, root := range p.LevelPaths {
		root = clean(root)
		err := fs.WalkDir(l.fsys, root, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if depth(root, name) > p.DirectoryDepth {
					return fs.SkipDir
				}
				return nil
			}
			if strings.EqualFold(path.Ext(name), ext) && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return nil
		})
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Info("level path missing", "path", root)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loader: list levels in %s: %w", root, err)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Close releases the caches.
func (l *Loader) Close() {
	l.projects.Close()
	l.levels.Close()
}

func (l *Loader) checkVersion(name string, p *project.Project) {
	if p.OgmoVersion == "" {
		l.log.V(1).Info("project records no editor version", "project", name)
		return
	}
	v, err := p.Version()
	if err != nil {
		l.log.Info("unreadable editor version", "project", name, "version", p.OgmoVersion)
		return
	}
	if !l.supported(v) {
		l.log.Info("unsupported editor version", "project", name, "version", v.String(), "supported", SupportedVersions)
	}
}

// clean turns name into an fs.FS path.
func clean(name string) string {
	name = path.Clean(strings.ReplaceAll(name, `\`, "/"))
	return strings.TrimPrefix(name, "./")
}

// depth counts the directories between root and dir.
func depth(root, dir string) int {
	if dir == root {
		return 0
	}
	rel := dir
	if root != "." {
		rel = strings.TrimPrefix(dir, root+"/")
	}
	return strings.Count(rel, "/") + 1
}
