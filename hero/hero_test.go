package hero

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func channelDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestSolid(t *testing.T) {
	c := color.RGBA{125, 211, 252, 255}
	img := Solid(16, 9, c)
	for _, p := range [][2]int{{0, 0}, {15, 8}, {7, 4}} {
		if got := img.RGBAAt(p[0], p[1]); got != c {
			t.Errorf("pixel %v = %v, want %v", p, got, c)
		}
	}
}

func TestGradientEndpoints(t *testing.T) {
	c1 := color.RGBA{15, 23, 42, 255}
	c2 := color.RGBA{254, 215, 170, 255}
	const w, h = 8, 200
	img := Gradient(w, h, c1, c2)

	if got := img.RGBAAt(3, 0); got != c1 {
		t.Errorf("top row = %v, want %v", got, c1)
	}
	last := img.RGBAAt(3, h-1)
	if channelDiff(last.R, c2.R) > 3 || channelDiff(last.G, c2.G) > 3 || channelDiff(last.B, c2.B) > 3 {
		t.Errorf("bottom row = %v, want approximately %v", last, c2)
	}
	if last.A != 255 {
		t.Errorf("bottom row alpha = %d, want 255", last.A)
	}
}

func TestGradientMonotonic(t *testing.T) {
	c1 := color.RGBA{255, 251, 235, 255}
	c2 := color.RGBA{254, 215, 170, 255}
	const h = 120
	img := Gradient(4, h, c1, c2)

	prev := img.RGBAAt(0, 0)
	for y := 1; y < h; y++ {
		cur := img.RGBAAt(0, y)
		if cur.R > prev.R || cur.G > prev.G || cur.B > prev.B {
			t.Fatalf("row %d = %v not monotonic after %v", y, cur, prev)
		}
		prev = cur
	}
}

func TestGradientBlendFactor(t *testing.T) {
	img := Gradient(4, 10, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})
	tests := []struct {
		y    int
		want uint8
	}{
		{0, 0},
		{1, 25},
		{5, 127},
		{9, 229},
	}
	for _, tt := range tests {
		got := img.RGBAAt(2, tt.y)
		if got.R != tt.want || got.G != tt.want || got.B != tt.want {
			t.Errorf("row %d = %v, want gray %d", tt.y, got, tt.want)
		}
	}
}

func TestGradientRowsUniform(t *testing.T) {
	img := Gradient(32, 10, color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})
	for y := 0; y < 10; y++ {
		first := img.RGBAAt(0, y)
		for x := 1; x < 32; x++ {
			if got := img.RGBAAt(x, y); got != first {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, first)
			}
		}
	}
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "images")
	var buf bytes.Buffer
	g := &Generator{Dir: dir, Width: 24, Height: 12, Out: &buf}

	written, err := g.Generate(GradientSet)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(written) != len(GradientSet) {
		t.Fatalf("wrote %d files, want %d", len(written), len(GradientSet))
	}

	for _, path := range written {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 12 {
			t.Errorf("%s bounds = %v, want 24x12", path, b)
		}
		if !strings.Contains(buf.String(), "Created "+path+"\n") {
			t.Errorf("missing confirmation for %s", path)
		}
	}
}

func TestGenerateOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero_day.png")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	g := &Generator{Dir: dir, Width: 4, Height: 4}
	if _, err := g.Generate(SolidSet[1:2]); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g2, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 125 || uint8(g2>>8) != 211 || uint8(b>>8) != 252 {
		t.Errorf("pixel = (%d,%d,%d), want (125,211,252)", r>>8, g2>>8, b>>8)
	}
}
