package blogtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/blogtools/hero"
	"github.com/eringen/blogtools/placeholder"
)

func newTestApp(t *testing.T) (*App, string, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	cfg := Config{
		PostsDir:  filepath.Join(root, "src", "posts"),
		PublicDir: filepath.Join(root, "public"),
		ImagesDir: filepath.Join(root, "public", "images"),
		Heroes:    HeroConfig{Width: 16, Height: 9},
		Placeholders: PlaceholderConfig{
			Width:  60,
			Height: 32,
			Seed:   5,
		},
		Dates: DateConfig{Start: "2025-10-01", End: "2025-10-11"},
	}
	if err := os.MkdirAll(cfg.PostsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	var buf bytes.Buffer
	return New(cfg, WithOutput(&buf)), root, &buf
}

func TestNewAppliesDefaults(t *testing.T) {
	a := New(Config{})
	if a.Config.PostsDir != "src/posts" || a.Config.ImagesDir != "public/images" {
		t.Errorf("defaults not applied: %+v", a.Config)
	}
	if a.rand == nil || a.out == nil {
		t.Errorf("expected rand and output to be set")
	}
}

func TestHeroSpecs(t *testing.T) {
	a := New(Config{})
	solid, err := a.HeroSpecs(false)
	if err != nil {
		t.Fatalf("HeroSpecs failed: %v", err)
	}
	if len(solid) != len(hero.SolidSet) || solid[0].Gradient {
		t.Errorf("unexpected solid set %+v", solid)
	}

	a = New(Config{Heroes: HeroConfig{Gradient: []HeroImage{{Name: "x.png", From: "#000", To: "#fff"}}}})
	grad, err := a.HeroSpecs(true)
	if err != nil {
		t.Fatalf("HeroSpecs failed: %v", err)
	}
	if len(grad) != 1 || !grad[0].Gradient || grad[0].To.R != 255 {
		t.Errorf("unexpected gradient set %+v", grad)
	}
}

func TestAppGenerateHeroes(t *testing.T) {
	a, root, buf := newTestApp(t)
	written, err := a.GenerateHeroes(true)
	if err != nil {
		t.Fatalf("GenerateHeroes failed: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %d heroes, want 3", len(written))
	}
	want := filepath.Join(root, "public", "images", "hero_night.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("missing %s: %v", want, err)
	}
	if strings.Count(buf.String(), "Created ") != 3 {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestAppGeneratePlaceholders(t *testing.T) {
	a, root, _ := newTestApp(t)
	written, err := a.GeneratePlaceholders([]placeholder.Item{LabelItem("Causal Inference")})
	if err != nil {
		t.Fatalf("GeneratePlaceholders failed: %v", err)
	}
	want := filepath.Join(root, "public", "images", "causal-inference.png")
	if len(written) != 1 || written[0] != want {
		t.Errorf("written = %v, want [%s]", written, want)
	}
}

func TestAppPlaceholderItems(t *testing.T) {
	a := New(Config{})
	if got := a.PlaceholderItems(); len(got) != len(placeholder.DefaultItems) {
		t.Errorf("got %d items, want %d", len(got), len(placeholder.DefaultItems))
	}
	a = New(Config{Placeholders: PlaceholderConfig{Items: []PlaceholderItem{{File: "a.png", Label: "A"}}}})
	got := a.PlaceholderItems()
	if len(got) != 1 || got[0] != (placeholder.Item{Filename: "a.png", Label: "A"}) {
		t.Errorf("PlaceholderItems() = %+v", got)
	}
}

func TestAppCheckImagesAndUpdateDates(t *testing.T) {
	a, _, buf := newTestApp(t)
	for i, name := range []string{"chapter1.md", "chapter2.md", "chapter3.md"} {
		content := "---\ndate: 2024-01-0" + string(rune('1'+i)) + "\nimage: /images/" + name + ".png\n---\n"
		if err := os.WriteFile(filepath.Join(a.Config.PostsDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	report, err := a.CheckImages(false)
	if err != nil {
		t.Fatalf("CheckImages failed: %v", err)
	}
	if len(report.Missing) != 3 {
		t.Errorf("missing = %d, want 3", len(report.Missing))
	}

	assignments, err := a.UpdateDates(false)
	if err != nil {
		t.Fatalf("UpdateDates failed: %v", err)
	}
	if len(assignments) != 3 || assignments[1].Date != "2025-10-06" {
		t.Errorf("assignments = %+v", assignments)
	}
	if !strings.Contains(buf.String(), "Updated chapter3.md to 2025-10-11") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
