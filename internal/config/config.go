// Package config loads the viewer's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window  Window  `toml:"window"`
	Camera  Camera  `toml:"camera"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Camera struct {
	FOV    float32    `toml:"fov"` // degrees
	Near   float32    `toml:"near"`
	Far    float32    `toml:"far"`
	Speed  float32    `toml:"speed"`
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
}

type Paths struct {
	Shaders string `toml:"shaders"`
	Data    string `toml:"data"`
	Scene   string `toml:"scene"` // empty selects the builtin demo scene
}

type Logging struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default is the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "shade-engine", VSync: true},
		Camera: Camera{
			FOV: 45, Near: 0.1, Far: 10000, Speed: 10,
			Eye: [3]float32{0, 15, 40},
		},
		Paths:   Paths{Shaders: "data/shaders", Data: "data"},
		Logging: Logging{Level: "info"},
	}
}

// Load overlays the file at path on Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the viewer cannot start with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera fov %v", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip range %v..%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}
