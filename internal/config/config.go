package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Compile-time defaults; a config.json next to the binary may override them.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Mandelbrot"

	// Iterations is the escape-time limit uploaded to the fragment shader.
	Iterations = 8000
)

// Config holds application configuration.
type Config struct {
	Window  Window  `json:"window"`
	Fractal Fractal `json:"fractal"`
}

// Window contains the initial window parameters.
type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`

	// VSync selects synchronized presentation. Turning it off falls back to
	// immediate presentation, which is degraded but functional.
	VSync bool `json:"vsync"`
}

// Fractal contains shader parameters.
type Fractal struct {
	Iterations uint32 `json:"iterations"`
}

var (
	instance *Config
	once     sync.Once
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
			VSync:  true,
		},
		Fractal: Fractal{
			Iterations: Iterations,
		},
	}
}

// Get returns the global configuration, loading config.json on first use if
// one exists.
func Get() *Config {
	once.Do(func() {
		instance = DefaultConfig()
		if data, err := os.ReadFile("config.json"); err == nil {
			json.Unmarshal(data, instance)
		}
		instance.sanitize()
	})
	return instance
}

// Load reads configuration from a file, overlaying the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize keeps overridden values usable.
func (c *Config) sanitize() {
	if c.Window.Width <= 0 {
		c.Window.Width = WindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = WindowHeight
	}
	if c.Window.Title == "" {
		c.Window.Title = WindowTitle
	}
	if c.Fractal.Iterations == 0 {
		c.Fractal.Iterations = Iterations
	}
}
