// Package config loads render settings from a JSON or YAML file and layers
// command-line overrides and defaults on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"meshview/internal/output"
	"meshview/internal/render"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	LogFile   string `json:"log_file" yaml:"log_file"`

	// Render settings
	Theme       string   `json:"theme" yaml:"theme"`
	Mode        string   `json:"mode" yaml:"mode"`
	Size        int      `json:"size" yaml:"size"`
	Supersample int      `json:"supersample" yaml:"supersample"`
	Yaw         *float64 `json:"yaw,omitempty" yaml:"yaw,omitempty"`
	Pitch       *float64 `json:"pitch,omitempty" yaml:"pitch,omitempty"`
	Simplify    float64  `json:"simplify" yaml:"simplify"`

	// Batch settings
	Format  string `json:"format" yaml:"format"`
	Workers int    `json:"workers" yaml:"workers"`

	Verbose bool `json:"verbose" yaml:"verbose"`
}

// Load reads a config file and returns Config. Files ending in .yaml or
// .yml are YAML; everything else is JSON. Fields not set in the file keep
// their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean "not set".
type Flags struct {
	OutputDir   string
	LogFile     string
	Theme       string
	Mode        string
	Size        int
	Supersample int
	Simplify    float64
	Format      string
	Workers     int
	Verbose     bool
}

// Resolve applies flags over the file values, then fills defaults, then
// validates the enum-like fields.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.Theme != "" {
		c.Theme = flags.Theme
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Size > 0 {
		c.Size = flags.Size
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Simplify > 0 {
		c.Simplify = flags.Simplify
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Verbose {
		c.Verbose = true
	}

	defaults := render.DefaultOptions()
	if c.Theme == "" {
		c.Theme = defaults.Theme.String()
	}
	if c.Mode == "" {
		c.Mode = defaults.Mode.String()
	}
	if c.Size <= 0 {
		c.Size = defaults.Size
	}
	if c.Supersample <= 0 {
		c.Supersample = defaults.Supersample
	}
	if c.Yaw == nil {
		yaw := defaults.Yaw
		c.Yaw = &yaw
	}
	if c.Pitch == nil {
		pitch := defaults.Pitch
		c.Pitch = &pitch
	}
	if c.Format == "" {
		c.Format = string(output.WebP)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	if _, err := render.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := render.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Simplify < 0 || c.Simplify > 1 {
		return fmt.Errorf("config: simplify factor %g outside [0, 1]", c.Simplify)
	}
	return nil
}

// RenderOptions converts a resolved Config into render.Options.
func (c Config) RenderOptions() (render.Options, error) {
	opts := render.DefaultOptions()
	theme, err := render.ParseTheme(c.Theme)
	if err != nil {
		return opts, err
	}
	mode, err := render.ParseMode(c.Mode)
	if err != nil {
		return opts, err
	}
	opts.Theme = theme
	opts.Mode = mode
	if c.Size > 0 {
		opts.Size = c.Size
		if 2*opts.Margin >= opts.Size {
			opts.Margin = opts.Size / 8
		}
	}
	if c.Supersample > 0 {
		opts.Supersample = c.Supersample
	}
	if c.Yaw != nil {
		opts.Yaw = *c.Yaw
	}
	if c.Pitch != nil {
		opts.Pitch = *c.Pitch
	}
	return opts, nil
}
