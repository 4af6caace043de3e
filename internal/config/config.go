// Package config loads the renderer's host/window configuration from a
// YAML file, generalizing the teacher's compile-time literal
// render.Config/DefaultConfig into an externally editable file. The
// scene manifest stays JSON (internal/sceneio) — this is strictly the
// window/device configuration, never scene data.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the teacher's render.Config shape, plus the default
// scene manifest path a standalone renderer needs at startup.
type Config struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	DefaultScene string `yaml:"defaultScene"`
}

// Default returns the built-in configuration used when no file is
// given, the same values as the teacher's DefaultConfig.
func Default() Config {
	return Config{
		Width:        1280,
		Height:       720,
		Title:        "Path Tracer",
		Fullscreen:   false,
		VSync:        true,
		DefaultScene: "scenes/cornell.json",
	}
}

// Load reads and unmarshals a YAML config file, starting from Default()
// so a partial file only overrides the fields it names.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
