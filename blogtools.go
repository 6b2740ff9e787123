// Package blogtools bundles the content-maintenance jobs of a static blog:
// checking that referenced images exist, generating hero and placeholder
// images, and spreading chapter publish dates across a range.
//
// Each job is a single synchronous pass over the filesystem. App wires the
// configured paths into the component packages and prints their reports.
package blogtools

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/eringen/blogtools/chapters"
	"github.com/eringen/blogtools/hero"
	"github.com/eringen/blogtools/imagecheck"
	"github.com/eringen/blogtools/placeholder"
)

// App runs the blog maintenance jobs against one Config.
type App struct {
	Config Config

	out  io.Writer
	rand *rand.Rand
}

// New creates an App. Zero config fields take their defaults.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		out:    io.Discard,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.rand == nil {
		a.rand = placeholder.NewRand(cfg.Placeholders.Seed)
	}
	return a
}

// CheckImages reports posts whose frontmatter image is missing from the
// public root. With body set, site-root images in post bodies are checked
// as well.
func (a *App) CheckImages(body bool) (imagecheck.Report, error) {
	c := &imagecheck.Checker{
		PostsDir:  a.Config.PostsDir,
		PublicDir: a.Config.PublicDir,
		Body:      body,
		Out:       a.out,
	}
	return c.Run()
}

// HeroSpecs returns the configured solid or gradient hero set.
func (a *App) HeroSpecs(gradient bool) ([]hero.Spec, error) {
	images := a.Config.Heroes.Solid
	builtin := hero.SolidSet
	if gradient {
		images = a.Config.Heroes.Gradient
		builtin = hero.GradientSet
	}
	if len(images) == 0 {
		return builtin, nil
	}

	specs := make([]hero.Spec, 0, len(images))
	for _, h := range images {
		from, err := ParseHexColor(h.From)
		if err != nil {
			return nil, fmt.Errorf("hero %s: %w", h.Name, err)
		}
		s := hero.Spec{Name: h.Name, From: from, Gradient: gradient}
		if gradient {
			if s.To, err = ParseHexColor(h.To); err != nil {
				return nil, fmt.Errorf("hero %s: %w", h.Name, err)
			}
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// GenerateHeroes writes the solid or gradient hero set to ImagesDir.
func (a *App) GenerateHeroes(gradient bool) ([]string, error) {
	specs, err := a.HeroSpecs(gradient)
	if err != nil {
		return nil, err
	}
	g := &hero.Generator{
		Dir:    a.Config.ImagesDir,
		Width:  a.Config.Heroes.Width,
		Height: a.Config.Heroes.Height,
		Out:    a.out,
	}
	return g.Generate(specs)
}

// PlaceholderItems returns the configured placeholder list, or the
// built-in chapter list when none is configured.
func (a *App) PlaceholderItems() []placeholder.Item {
	if len(a.Config.Placeholders.Items) == 0 {
		return placeholder.DefaultItems
	}
	items := make([]placeholder.Item, 0, len(a.Config.Placeholders.Items))
	for _, it := range a.Config.Placeholders.Items {
		items = append(items, placeholder.Item{Filename: it.File, Label: it.Label})
	}
	return items
}

// GeneratePlaceholders renders items, or PlaceholderItems when items is
// empty, into ImagesDir.
func (a *App) GeneratePlaceholders(items []placeholder.Item) ([]string, error) {
	if len(items) == 0 {
		items = a.PlaceholderItems()
	}
	g := &placeholder.Generator{
		Dir:         a.Config.ImagesDir,
		Width:       a.Config.Placeholders.Width,
		Height:      a.Config.Placeholders.Height,
		Supersample: a.Config.Placeholders.Supersample,
		Rand:        a.rand,
		Out:         a.out,
	}
	return g.Generate(items)
}

// UpdateDates spreads chapter dates across the configured range.
func (a *App) UpdateDates(dryRun bool) ([]chapters.Assignment, error) {
	start, end, err := a.Config.Dates.Range()
	if err != nil {
		return nil, err
	}
	r := &chapters.Redistributor{
		Dir:    a.Config.PostsDir,
		Start:  start,
		End:    end,
		DryRun: dryRun,
		Out:    a.out,
	}
	return r.Run()
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
