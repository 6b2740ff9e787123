// Package hero renders fixed-size hero banner images as flat fills or
// vertical two-color gradients.
package hero

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Spec describes one hero image. Gradient blends From at the top toward To
// at the bottom; otherwise From fills the canvas.
type Spec struct {
	Name     string
	From     color.RGBA
	To       color.RGBA
	Gradient bool
}

// SolidSet is the flat-color hero set.
var SolidSet = []Spec{
	{Name: "hero_morning.png", From: color.RGBA{224, 242, 254, 255}},
	{Name: "hero_day.png", From: color.RGBA{125, 211, 252, 255}},
	{Name: "hero_night.png", From: color.RGBA{30, 58, 138, 255}},
}

// GradientSet is the gradient hero set: cream to peach, sky to white,
// navy to charcoal.
var GradientSet = []Spec{
	{Name: "hero_morning.png", From: color.RGBA{255, 251, 235, 255}, To: color.RGBA{254, 215, 170, 255}, Gradient: true},
	{Name: "hero_day.png", From: color.RGBA{224, 242, 254, 255}, To: color.RGBA{255, 255, 255, 255}, Gradient: true},
	{Name: "hero_night.png", From: color.RGBA{15, 23, 42, 255}, To: color.RGBA{30, 41, 59, 255}, Gradient: true},
}

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Gradient returns a w x h image blending from top toward bottom. Row y is
// c2 pasted over c1 through a mask of opacity floor(255*y/h).
func Gradient(w, h int, c1, c2 color.RGBA) *image.RGBA {
	img := Solid(w, h, c1)
	mask := image.NewAlpha(img.Bounds())
	for y := 0; y < h; y++ {
		a := uint8(255 * y / h)
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := range row {
			row[x] = a
		}
	}
	draw.DrawMask(img, img.Bounds(), image.NewUniform(c2), image.Point{}, mask, image.Point{}, draw.Over)
	return img
}

// Render draws the image described by s at w x h.
func (s Spec) Render(w, h int) *image.RGBA {
	if s.Gradient {
		return Gradient(w, h, s.From, s.To)
	}
	return Solid(w, h, s.From)
}

// Generator writes hero sets to Dir.
type Generator struct {
	Dir    string
	Width  int
	Height int
	Out    io.Writer
}

// Generate renders every spec into g.Dir, creating it if needed and
// overwriting existing files. It returns the written paths.
func (g *Generator) Generate(specs []Spec) ([]string, error) {
	w, h := g.Width, g.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	out := g.Out
	if out == nil {
		out = io.Discard
	}

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, s := range specs {
		path := filepath.Join(g.Dir, s.Name)
		if err := WritePNG(path, s.Render(w, h)); err != nil {
			return written, err
		}
		written = append(written, path)
		fmt.Fprintf(out, "Created %s\n", path)
	}
	return written, nil
}

// WritePNG encodes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
