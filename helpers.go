package blogtools

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/eringen/blogtools/chapters"
	"github.com/eringen/blogtools/placeholder"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// LabelItem returns a placeholder item for label named after its slug.
func LabelItem(label string) placeholder.Item {
	name := Slugify(label)
	if name == "" {
		name = "placeholder"
	}
	return placeholder.Item{Filename: name + ".png", Label: label}
}

// ParseHexColor parses "#rrggbb", "rrggbb" or "#rgb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Range parses the configured start and end dates.
func (d DateConfig) Range() (start, end time.Time, err error) {
	if start, err = chapters.ParseDate(d.Start); err != nil {
		return
	}
	end, err = chapters.ParseDate(d.End)
	return
}
