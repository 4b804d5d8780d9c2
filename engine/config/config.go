// Package config loads the window and backdrop settings from TOML or YAML.
//
//	[window]
//	title = "backdrop"
//	width = 1280
//	height = 720
//	vsync = true
//
//	[backdrop]
//	brightness = 1.0
//	scanlines = false
//	vertex_shader = "shaders/custom.vert"
//	fragment_shader = "shaders/custom.frag"
//
//	[fallback]
//	angle = 135
//	stops = ["#0b0c1d", "#312174", "#712f93", "#176272"]
//	period = "15s"
//	opacity = 0.85
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hubastard/backdrop/engine/assets"
	"github.com/hubastard/backdrop/engine/backdrop"
	"github.com/hubastard/backdrop/engine/colors"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/fallback"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File mirrors the on-disk layout.
type File struct {
	Window   Window   `toml:"window" yaml:"window"`
	Backdrop Backdrop `toml:"backdrop" yaml:"backdrop"`
	Fallback Fallback `toml:"fallback" yaml:"fallback"`
}

type Window struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	VSync  *bool  `toml:"vsync" yaml:"vsync"`
}

// Fallback customizes the degraded gradient.
type Fallback struct {
	Angle  *float32       `toml:"angle" yaml:"angle"`
	Stops  []colors.Color `toml:"stops" yaml:"stops"`
	Period *Duration      `toml:"period" yaml:"period"`

	// Opacity replaces the alpha of every stop, clamped to [0..1].
	Opacity *float32 `toml:"opacity" yaml:"opacity"`
}

type Backdrop struct {
	backdrop.Options `yaml:",inline"`

	VertexShader   string `toml:"vertex_shader" yaml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader" yaml:"fragment_shader"`
}

// Load reads path, choosing the decoder from its extension. A leading ~
// is expanded to the user's home directory.
func Load(path string) (*File, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	f := &File{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("config %q: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("config %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %q: unsupported extension %q", path, ext)
	}
	if err := f.Backdrop.resolveShaders(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return f, nil
}

// Options returns the backdrop options with the fallback section applied.
func (f *File) Options() backdrop.Options {
	opts := f.Backdrop.Options
	fb := f.Fallback
	if fb.Angle == nil && len(fb.Stops) == 0 && fb.Period == nil && fb.Opacity == nil {
		return opts
	}
	g := fallback.DefaultGradient()
	if fb.Angle != nil {
		g.Angle = *fb.Angle
	}
	if len(fb.Stops) > 0 {
		g.Stops = fb.Stops
	}
	if fb.Period != nil {
		g.Period = time.Duration(*fb.Period)
	}
	if fb.Opacity != nil {
		a := min(max(*fb.Opacity, 0), 1)
		stops := make([]colors.Color, len(g.Stops))
		for i, c := range g.Stops {
			stops[i] = c.WithAlpha(a)
		}
		g.Stops = stops
	}
	opts.Fallback = &g
	return opts
}

// Duration reads Go duration strings such as "15s".
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

// resolveShaders loads custom shader files relative to the config file.
func (b *Backdrop) resolveShaders(dir string) error {
	if b.VertexShader == "" && b.FragmentShader == "" {
		return nil
	}
	if b.VertexShader == "" || b.FragmentShader == "" {
		return fmt.Errorf("vertex_shader and fragment_shader must be set together")
	}
	vs, err := assets.LoadShader(relativeTo(dir, b.VertexShader))
	if err != nil {
		return err
	}
	fs, err := assets.LoadShader(relativeTo(dir, b.FragmentShader))
	if err != nil {
		return err
	}
	b.VertexSource, b.FragmentSource = vs, fs
	return nil
}

func relativeTo(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Apply overlays the window section on cfg.
func (w Window) Apply(cfg core.Config) core.Config {
	if w.Title != "" {
		cfg.Title = w.Title
	}
	if w.Width > 0 {
		cfg.Width = w.Width
	}
	if w.Height > 0 {
		cfg.Height = w.Height
	}
	if w.VSync != nil {
		cfg.VSync = *w.VSync
	}
	return cfg
}
