// Package imagecheck verifies that images referenced by post documents exist
// under the site's public asset root.
package imagecheck

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eringen/blogtools/frontmatter"
)

// Missing is a document whose declared image does not resolve to a file.
type Missing struct {
	Document string
	Image    string
}

// Report is the result of a check run.
type Report struct {
	Checked  int
	Missing  []Missing
	Warnings []string
}

// Checker scans PostsDir for *.md documents and resolves their images
// against PublicDir.
type Checker struct {
	PostsDir  string
	PublicDir string
	// Body also checks site-root markdown image references in the body.
	Body bool
	Out  io.Writer
}

// Resolve maps a declared image path onto the asset root, stripping a
// single leading separator.
func Resolve(publicDir, declared string) string {
	return filepath.Join(publicDir, strings.TrimPrefix(declared, "/"))
}

// Run checks every document and prints the report. Any read failure aborts
// the run.
func (c *Checker) Run() (Report, error) {
	out := c.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, "Checking images in %s...\n", c.PostsDir)

	posts, err := filepath.Glob(filepath.Join(c.PostsDir, "*.md"))
	if err != nil {
		return Report{}, fmt.Errorf("list posts: %w", err)
	}

	var report Report
	for _, p := range posts {
		content, err := os.ReadFile(p)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", p, err)
		}
		report.Checked++

		if img, ok := frontmatter.Image(string(content)); ok {
			found, err := exists(Resolve(c.PublicDir, img))
			if err != nil {
				return report, err
			}
			if !found {
				report.Missing = append(report.Missing, Missing{Document: p, Image: img})
			}
		} else {
			w := fmt.Sprintf("Warning: No image found in frontmatter for %s", p)
			report.Warnings = append(report.Warnings, w)
			fmt.Fprintln(out, w)
		}

		if c.Body {
			missing, err := c.checkBody(p, content)
			if err != nil {
				return report, err
			}
			report.Missing = append(report.Missing, missing...)
		}
	}

	fmt.Fprintf(out, "\nFound %d missing images:\n", len(report.Missing))
	for _, m := range report.Missing {
		fmt.Fprintf(out, "%s -> %s\n", m.Document, m.Image)
	}
	return report, nil
}

// checkBody resolves body image references rooted at "/". Relative and
// external references are not checked.
func (c *Checker) checkBody(path string, content []byte) ([]Missing, error) {
	body, err := frontmatter.Body(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var missing []Missing
	for _, img := range frontmatter.BodyImages(body) {
		if !strings.HasPrefix(img, "/") || strings.HasPrefix(img, "//") {
			continue
		}
		found, err := exists(Resolve(c.PublicDir, img))
		if err != nil {
			return nil, err
		}
		if !found {
			missing = append(missing, Missing{Document: path, Image: img})
		}
	}
	return missing, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
