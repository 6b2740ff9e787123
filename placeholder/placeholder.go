// Package placeholder renders abstract social-preview placeholder images: a
// flat background, a few translucent circles and tilted rectangles, and a
// centered bold label.
//
// Shapes are laid out in a 100x50 data space (y up) that is stretched over
// the canvas, so the composition is the same at any output size.
package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/eringen/blogtools/hero"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 630

	spaceW     = 100.0
	spaceH     = 50.0
	shapeCount = 5
	fontSize   = 30 // points at 100 dpi on a DefaultWidth canvas
	fontDPI    = 100
	labelFit   = 0.9 // widest label as a fraction of canvas width
)

// Item is one placeholder to render.
type Item struct {
	Filename string
	Label    string
}

// DefaultItems are the chapter placeholders of the statistics series.
var DefaultItems = []Item{
	{"probability.png", "Probability"},
	{"modeling.png", "Statistical Modeling"},
	{"glm.png", "GLM"},
	{"nonparametric.png", "Nonparametric Tests"},
	{"bayesian.png", "Bayesian Statistics"},
	{"doe.png", "Experimental Design"},
	{"timeseries-advanced.png", "Advanced Time Series"},
	{"markov.png", "Stochastic Processes"},
	{"sampling.png", "Sampling Theory"},
	{"qc.png", "Quality Control"},
	{"entropy.png", "Information Entropy"},
	{"distributions.png", "Distributions"},
	{"data-analysis.png", "Applied Statistics"},
	{"high-dim.png", "High-Dimensional Data"},
	{"sparse.png", "Sparse Modeling"},
	{"mixture.png", "Mixture Models"},
	{"missing-data.png", "Missing Data"},
	{"robust.png", "Robust Statistics"},
	{"causal.png", "Causal Inference"},
	{"hierarchical.png", "Hierarchical Bayes"},
	{"bootstrap.png", "Bootstrap Resampling"},
	{"validation.png", "Model Diagnosis"},
	{"limit-theorems.png", "Sampling Distributions"},
	{"ethics.png", "Ethics & Reproducibility"},
	{"estimation.png", "Estimation"},
	{"hypothesis.png", "Hypothesis Testing"},
	{"anova.png", "ANOVA"},
	{"regression.png", "Regression Analysis"},
	{"multivariate.png", "Multivariate Analysis"},
	{"timeseries.png", "Time Series Basics"},
}

var (
	// Backgrounds are soft greys.
	Backgrounds = []color.RGBA{
		{0xf8, 0xf9, 0xfa, 0xff},
		{0xe9, 0xec, 0xef, 0xff},
		{0xde, 0xe2, 0xe6, 0xff},
		{0xda, 0xe0, 0xe5, 0xff},
	}
	// ShapeColors: blue, green, amber, red, violet.
	ShapeColors = []color.RGBA{
		{0x3b, 0x82, 0xf6, 0xff},
		{0x10, 0xb9, 0x81, 0xff},
		{0xf5, 0x9e, 0x0b, 0xff},
		{0xef, 0x44, 0x44, 0xff},
		{0x8b, 0x5c, 0xf6, 0xff},
	}
	LabelColor = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// ShapeKind selects the decorative primitive.
type ShapeKind int

const (
	Circle ShapeKind = iota
	Rect
)

func (k ShapeKind) String() string {
	if k == Circle {
		return "circle"
	}
	return "rect"
}

// Shape is a decorative primitive in data-space coordinates. Circles use
// (X, Y) as center and R as radius; rectangles use (X, Y) as the anchor
// corner, W x H as size and Angle in degrees counter-clockwise about the
// anchor.
type Shape struct {
	Kind  ShapeKind
	X, Y  float64
	R     float64
	W, H  float64
	Angle float64
	Color color.RGBA
	Alpha float64
}

// Layout is the randomized part of a placeholder.
type Layout struct {
	Background color.RGBA
	Shapes     []Shape
}

// NewRand returns a PCG source seeded with seed, or with the clock when
// seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// RandomShape draws one shape from r.
func RandomShape(r *rand.Rand) Shape {
	s := Shape{
		Kind:  ShapeKind(r.IntN(2)),
		Color: ShapeColors[r.IntN(len(ShapeColors))],
		Alpha: uniform(r, 0.1, 0.3),
	}
	if s.Kind == Circle {
		s.X = uniform(r, 10, 90)
		s.Y = uniform(r, 10, 40)
		s.R = uniform(r, 5, 15)
		return s
	}
	s.X = uniform(r, 0, 90)
	s.Y = uniform(r, 0, 40)
	s.W = uniform(r, 10, 30)
	s.H = uniform(r, 5, 20)
	s.Angle = uniform(r, -15, 15)
	return s
}

// RandomLayout draws a background and the decorative shapes from r.
func RandomLayout(r *rand.Rand) Layout {
	l := Layout{Background: Backgrounds[r.IntN(len(Backgrounds))]}
	for i := 0; i < shapeCount; i++ {
		l.Shapes = append(l.Shapes, RandomShape(r))
	}
	return l
}

// Generator renders placeholders into Dir.
type Generator struct {
	Dir    string
	Width  int
	Height int
	// Supersample renders at this multiple of the output size and scales
	// down. Values below 2 render directly.
	Supersample int
	Rand        *rand.Rand
	Out         io.Writer
}

func (g *Generator) size() (int, int) {
	w, h := g.Width, g.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}

func (g *Generator) source() *rand.Rand {
	if g.Rand == nil {
		g.Rand = NewRand(0)
	}
	return g.Rand
}

// Render draws a fresh random layout with label centered on it.
func (g *Generator) Render(label string) (*image.RGBA, error) {
	return g.RenderLayout(RandomLayout(g.source()), label)
}

// RenderLayout draws l and label at the generator's output size.
func (g *Generator) RenderLayout(l Layout, label string) (*image.RGBA, error) {
	w, h := g.size()
	scale := g.Supersample
	if scale < 2 {
		scale = 1
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(l.Background), image.Point{}, draw.Src)

	c := newCanvas(canvas)
	for _, s := range l.Shapes {
		c.fill(s)
	}

	if label != "" {
		size := fontSize * float64(w) / DefaultWidth * float64(scale)
		if err := drawLabel(canvas, label, size); err != nil {
			return nil, err
		}
	}

	if scale == 1 {
		return canvas, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return dst, nil
}

// Generate renders every item into g.Dir, creating it if needed and
// overwriting existing files. It returns the written paths.
func (g *Generator) Generate(items []Item) ([]string, error) {
	out := g.Out
	if out == nil {
		out = io.Discard
	}
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, it := range items {
		img, err := g.Render(it.Label)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", it.Filename, err)
		}
		path := filepath.Join(g.Dir, it.Filename)
		if err := hero.WritePNG(path, img); err != nil {
			return written, err
		}
		written = append(written, path)
		fmt.Fprintf(out, "Generated %s\n", path)
	}
	return written, nil
}

// canvas maps data space onto an image and fills shapes with a vector
// rasterizer.
type canvas struct {
	dst    *image.RGBA
	w, h   float64
	raster *vector.Rasterizer
}

func newCanvas(dst *image.RGBA) *canvas {
	b := dst.Bounds()
	return &canvas{
		dst:    dst,
		w:      float64(b.Dx()),
		h:      float64(b.Dy()),
		raster: vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// px converts a data-space point to pixel space (y down).
func (c *canvas) px(x, y float64) (float32, float32) {
	return float32(x / spaceW * c.w), float32(c.h - y/spaceH*c.h)
}

func (c *canvas) fill(s Shape) {
	z := c.raster
	z.Reset(int(c.w), int(c.h))
	z.DrawOp = draw.Over

	switch s.Kind {
	case Circle:
		cx, cy := c.px(s.X, s.Y)
		r := float32(s.R / spaceW * c.w)
		k := float32(0.5522847498) * r
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
		z.ClosePath()
	case Rect:
		ax := s.X / spaceW * c.w
		ay := s.Y / spaceH * c.h
		w := s.W / spaceW * c.w
		h := s.H / spaceH * c.h
		sin, cos := math.Sincos(s.Angle * math.Pi / 180)
		corners := [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
		for i, p := range corners {
			x := ax + p[0]*cos - p[1]*sin
			y := ay + p[0]*sin + p[1]*cos
			if i == 0 {
				z.MoveTo(float32(x), float32(c.h-y))
			} else {
				z.LineTo(float32(x), float32(c.h-y))
			}
		}
		z.ClosePath()
	}

	src := image.NewUniform(color.NRGBA{s.Color.R, s.Color.G, s.Color.B, uint8(math.Round(s.Alpha * 255))})
	z.Draw(c.dst, c.dst.Bounds(), src, image.Point{})
}

var loadBold = sync.OnceValues(func() (*opentype.Font, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
})

func newFace(size float64) (font.Face, error) {
	f, err := loadBold()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// drawLabel centers label on dst in bold at size points. Labels wider than
// labelFit of the canvas are set smaller so they are never clipped.
func drawLabel(dst *image.RGBA, label string, size float64) error {
	face, err := newFace(size)
	if err != nil {
		return err
	}

	b := dst.Bounds()
	fit := labelFit * float64(b.Dx())
	if adv := float64(font.MeasureString(face, label)) / 64; adv > fit {
		face.Close()
		if face, err = newFace(size * fit / adv); err != nil {
			return err
		}
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(LabelColor),
		Face: face,
	}
	m := face.Metrics()
	advance := d.MeasureString(label)
	d.Dot = fixed.Point26_6{
		X: fixed.I(b.Dx()/2) - advance/2,
		Y: fixed.I(b.Dy()/2) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(label)
	return nil
}
