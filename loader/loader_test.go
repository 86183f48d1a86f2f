package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"

	"github.com/milk9111/ogmo3/levels"
	"github.com/milk9111/ogmo3/project"
)

// capture returns a logger recording every line it is given.
func capture() (logr.Logger, func() []string) {
	var mu sync.Mutex
	var lines []string
	log := funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})
	return log, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), lines...)
	}
}

func newSample(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	l, err := New(levels.Sample(), opts...)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestLoadSample(t *testing.T) {
	log, lines := capture()
	l := newSample(t, WithLogger(log))

	p, err := l.Project(levels.SampleProject)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	again, err := l.Project("./" + levels.SampleProject)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if again != p {
		t.Fatalf("expected the cached project to be returned")
	}
	for _, name := range levels.SampleLevels {
		if _, err := l.Level(name); err != nil {
			t.Fatalf("level %s: %v", name, err)
		}
	}
	got := strings.Join(lines(), "\n")
	if !strings.Contains(got, `"msg"="cache hit"`) || !strings.Contains(got, `"msg"="cache miss"`) {
		t.Fatalf("expected cache logging, got:\n%s", got)
	}
	if strings.Contains(got, "unsupported editor version") {
		t.Fatalf("sample version should be supported:\n%s", got)
	}
}

func TestInvalidate(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"width":1,"height":1,"offsetX":0,"offsetY":0,"layers":[]}`)},
	}
	l, err := New(fsys)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()

	first, err := l.Level("a.json")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	fsys["a.json"] = &fstest.MapFile{Data: []byte(`{"width":2,"height":1,"offsetX":0,"offsetY":0,"layers":[]}`)}
	if cached, _ := l.Level("a.json"); cached.Width != first.Width {
		t.Fatalf("expected the cached level before invalidation")
	}
	l.Invalidate("a.json")
	fresh, err := l.Level("a.json")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if fresh.Width != 2 {
		t.Fatalf("expected reloaded width 2, got %v", fresh.Width)
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json": {Data: []byte(`{"width":`)},
	}
	l, err := New(fsys)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()

	if _, err := l.Level("missing.json"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := l.Level("broken.json"); err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, err := l.Project("broken.json"); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestUnsupportedVersionWarns(t *testing.T) {
	raw, err := levels.Load(levels.SampleProject)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	newer := strings.Replace(string(raw), `"ogmoVersion": "3.4.0"`, `"ogmoVersion": "4.1.0"`, 1)
	log, lines := capture()
	l, err := New(fstest.MapFS{"p.ogmo": {Data: []byte(newer)}}, WithLogger(log))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()
	if _, err := l.Project("p.ogmo"); err != nil {
		t.Fatalf("project: %v", err)
	}
	if got := strings.Join(lines(), "\n"); !strings.Contains(got, "unsupported editor version") {
		t.Fatalf("expected a version warning, got:\n%s", got)
	}
}

func TestLevelNames(t *testing.T) {
	l := newSample(t)
	p, err := l.Project(levels.SampleProject)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	names, err := l.LevelNames(p)
	if err != nil {
		t.Fatalf("level names: %v", err)
	}
	if diff := cmp.Diff([]string{"levels/dos.json", "levels/uno.json"}, names); diff != "" {
		t.Fatalf("level names mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelNamesDepth(t *testing.T) {
	file := &fstest.MapFile{Data: []byte(`{}`)}
	fsys := fstest.MapFS{
		"top.json":         file,
		"a/one.json":       file,
		"a/b/two.json":     file,
		"a/b/c/three.json": file,
		"a/notes.txt":      file,
	}
	l, err := New(fsys)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer l.Close()

	p := &project.Project{LevelPaths: []string{"."}, DirectoryDepth: 2, DefaultExportMode: ".json"}
	names, err := l.LevelNames(p)
	if err != nil {
		t.Fatalf("level names: %v", err)
	}
	want := []string{"a/b/two.json", "a/one.json", "top.json"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("level names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDir(t *testing.T) {
	if _, err := NewDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for a missing directory")
	}
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewDir(file); err == nil {
		t.Fatalf("expected error for a file")
	}
}

func TestWatcherReportsDocuments(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "level.json")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("expected %s, got %s", target, name)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for an event")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("expected Events to be closed")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestIsDocument(t *testing.T) {
	for name, want := range map[string]bool{
		"a.json": true, "b.OGMO": true, "c.yaml": false, "d": false,
	} {
		if got := IsDocument(name); got != want {
			t.Fatalf("IsDocument(%q) = %v, want %v", name, got, want)
		}
	}
}
