package blogtools

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/blogtools/chapters"
)

// DefaultConfigPath is read when no other config path is given.
const DefaultConfigPath = "blogtools.yaml"

// Config holds the paths and parameters of every tool. Zero values fall
// back to the default site layout (src/posts, public/images).
type Config struct {
	PostsDir  string `yaml:"postsDir"`  // Post documents (default "src/posts")
	PublicDir string `yaml:"publicDir"` // Public asset root (default "public")
	ImagesDir string `yaml:"imagesDir"` // Generated image output (default "public/images")

	Heroes       HeroConfig        `yaml:"heroes"`
	Placeholders PlaceholderConfig `yaml:"placeholders"`
	Dates        DateConfig        `yaml:"dates"`
}

// HeroImage is one hero image. To is only used by gradient sets.
type HeroImage struct {
	Name string `yaml:"name"`
	From string `yaml:"from"`
	To   string `yaml:"to,omitempty"`
}

// HeroConfig overrides the hero sets. Empty lists use the built-in sets.
type HeroConfig struct {
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	Solid    []HeroImage `yaml:"solid,omitempty"`
	Gradient []HeroImage `yaml:"gradient,omitempty"`
}

// PlaceholderItem is a placeholder file and its label.
type PlaceholderItem struct {
	File  string `yaml:"file"`
	Label string `yaml:"label"`
}

// PlaceholderConfig controls abstract placeholder rendering.
type PlaceholderConfig struct {
	Width       int               `yaml:"width"`
	Height      int               `yaml:"height"`
	Supersample int               `yaml:"supersample"`
	Seed        uint64            `yaml:"seed"` // 0 draws a new layout every run
	Items       []PlaceholderItem `yaml:"items,omitempty"`
}

// DateConfig is the inclusive publish date range for chapter posts.
type DateConfig struct {
	Start string `yaml:"start"` // default "2025-10-01"
	End   string `yaml:"end"`   // default "2026-02-10"
}

func (c *Config) setDefaults() {
	if c.PostsDir == "" {
		c.PostsDir = "src/posts"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "public/images"
	}
	if c.Placeholders.Supersample == 0 {
		c.Placeholders.Supersample = 2
	}
	if c.Dates.Start == "" {
		c.Dates.Start = "2025-10-01"
	}
	if c.Dates.End == "" {
		c.Dates.End = "2026-02-10"
	}
}

// Validate checks sizes, colors and the date range.
func (c *Config) Validate() error {
	sizes := []struct {
		name string
		v    int
	}{
		{"heroes.width", c.Heroes.Width},
		{"heroes.height", c.Heroes.Height},
		{"placeholders.width", c.Placeholders.Width},
		{"placeholders.height", c.Placeholders.Height},
		{"placeholders.supersample", c.Placeholders.Supersample},
	}
	for _, s := range sizes {
		if s.v < 0 {
			return fmt.Errorf("blogtools: %s must not be negative, got %d", s.name, s.v)
		}
	}
	for _, set := range [][]HeroImage{c.Heroes.Solid, c.Heroes.Gradient} {
		for _, h := range set {
			if h.Name == "" {
				return errors.New("blogtools: hero image without name")
			}
			if _, err := ParseHexColor(h.From); err != nil {
				return fmt.Errorf("blogtools: hero %s: %w", h.Name, err)
			}
		}
	}
	for _, h := range c.Heroes.Gradient {
		if _, err := ParseHexColor(h.To); err != nil {
			return fmt.Errorf("blogtools: hero %s: %w", h.Name, err)
		}
	}
	for _, it := range c.Placeholders.Items {
		if it.File == "" {
			return fmt.Errorf("blogtools: placeholder %q without file", it.Label)
		}
	}
	start, end, err := c.Dates.Range()
	if err != nil {
		return fmt.Errorf("blogtools: %w", err)
	}
	if end.Before(start) {
		return chapters.ErrInvalidRange
	}
	return nil
}

// LoadConfig reads a YAML config from path. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("blogtools: read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("blogtools: parse config %s: %w", path, err)
		}
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithOutput sets where reports are printed (default io.Discard).
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithRand sets the randomness source for placeholder layouts, overriding
// the configured seed.
func WithRand(r *rand.Rand) Option {
	return func(a *App) {
		a.rand = r
	}
}
