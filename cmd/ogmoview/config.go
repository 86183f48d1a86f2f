package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the viewer's settings file.
type Config struct {
	// Project is the .ogmo file to open. Levels are resolved relative to
	// its directory.
	Project string `yaml:"project"`
	// Level is the level to show first, relative to the project. Empty picks
	// the first level the project lists.
	Level  string       `yaml:"level"`
	Window WindowConfig `yaml:"window"`
	// Zoom is the initial scale factor.
	Zoom float64 `yaml:"zoom"`
	// Watch reloads documents when they change on disk.
	Watch bool `yaml:"watch"`
	// Grid draws each tile layer's cell grid in this colour. Empty disables it.
	Grid string `yaml:"grid"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func defaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "ogmoview"},
		Zoom:   2,
		Watch:  true,
	}
}

// LoadConfig reads a YAML config file over the defaults. Relative paths in
// the file are resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("ogmoview: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("ogmoview: unmarshal %s: %w", path, err)
	}
	if cfg.Project != "" && !filepath.IsAbs(cfg.Project) {
		cfg.Project = filepath.Join(filepath.Dir(path), cfg.Project)
	}
	return cfg, nil
}

// Validate reports settings the viewer cannot run with.
func (c Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("ogmoview: no project given")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("ogmoview: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Zoom <= 0 {
		return fmt.Errorf("ogmoview: invalid zoom %v", c.Zoom)
	}
	return nil
}
