// Package frontmatter reads and rewrites single key-value lines in the
// frontmatter block of post documents.
//
// Fields are located with line-anchored patterns rather than a full YAML
// parse, so a rewrite touches only the matched line and leaves every other
// byte of the document as it was.
package frontmatter

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	fm "github.com/adrg/frontmatter"
)

var (
	// image: /images/foo.png, image: "/images/foo.png", image: '/images/foo.png'
	reImage = regexp.MustCompile(`(?m)^image:[ \t]*["']?([^"'\r\n]+)["']?`)
	// date: 2025-10-01 or date: "2025-10-01"
	reDate = regexp.MustCompile(`(?m)^date:\s*["']?(\d{4}-\d{2}-\d{2})["']?`)
	// ![alt](/images/foo.png) or ![alt](/images/foo.png "title")
	reBodyImage = regexp.MustCompile(`!\[[^\]]*\]\(\s*([^)\s]+)`)
)

// Image returns the value of the first `image:` line in content.
func Image(content string) (string, bool) {
	m := reImage.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// Date returns the ISO date of the first `date:` line in content.
func Date(content string) (string, bool) {
	m := reDate.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SetDate replaces the first `date:` line with a quoted ISO date.
// The second result reports whether content changed.
func SetDate(content, date string) (string, bool) {
	loc := reDate.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	out := content[:loc[0]] + fmt.Sprintf("date: %q", date) + content[loc[1]:]
	return out, out != content
}

// bodyOnly delimits a YAML block without decoding it, so posts whose
// frontmatter is not strict YAML still yield a body.
var bodyOnly = fm.NewFormat("---", "---", func([]byte, any) error { return nil })

// Body returns the document with its frontmatter block removed. Documents
// without a frontmatter block are returned whole.
func Body(content []byte) ([]byte, error) {
	var meta struct{}
	body, err := fm.Parse(bytes.NewReader(content), &meta, bodyOnly)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}

// BodyImages returns the targets of markdown image references in body,
// in order of appearance.
func BodyImages(body []byte) []string {
	var out []string
	for _, m := range reBodyImage.FindAllSubmatch(body, -1) {
		out = append(out, string(m[1]))
	}
	return out
}
