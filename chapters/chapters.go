// Package chapters spreads the publish dates of chapter-numbered posts
// evenly across a date range.
package chapters

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eringen/blogtools/frontmatter"
)

const (
	// DateLayout is the ISO date layout used in frontmatter.
	DateLayout = "2006-01-02"

	filePrefix = "chapter"
	fileExt    = ".md"
)

var reChapter = regexp.MustCompile(`chapter(\d+)`)

// ErrInvalidRange is returned when the end date precedes the start date.
var ErrInvalidRange = errors.New("chapters: end date before start date")

// Number returns the chapter number encoded in filename, or math.MaxInt
// when there is none so such files sort last.
func Number(filename string) int {
	m := reChapter.FindStringSubmatch(filename)
	if m == nil {
		return math.MaxInt
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return math.MaxInt
	}
	return n
}

// Discover lists chapter files in dir ordered by chapter number. Files
// sharing a number keep filename order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		files = append(files, name)
	}
	sort.SliceStable(files, func(i, j int) bool {
		return Number(files[i]) < Number(files[j])
	})
	return files, nil
}

// Interval is the spacing in days between consecutive chapters.
func Interval(totalDays, count int) float64 {
	if count <= 1 {
		return 0
	}
	return float64(totalDays) / float64(count-1)
}

// Schedule returns count dates from start, the i-th offset by
// floor(interval*i) days. The last date never passes end.
func Schedule(start, end time.Time, count int) ([]time.Time, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	interval := Interval(days(start, end), count)
	out := make([]time.Time, count)
	for i := range out {
		out[i] = start.AddDate(0, 0, int(math.Floor(interval*float64(i))))
	}
	return out, nil
}

func days(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// Assignment is the date given to one chapter file.
type Assignment struct {
	File    string
	Date    string
	Updated bool
}

// Redistributor rewrites chapter dates in Dir.
type Redistributor struct {
	Dir   string
	Start time.Time
	End   time.Time
	// DryRun reports what would change without writing.
	DryRun bool
	Out    io.Writer
}

// Run assigns and writes dates. Files are rewritten one at a time; a
// failure stops the run and leaves earlier files updated.
func (r *Redistributor) Run() ([]Assignment, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	files, err := Discover(r.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No chapter files found.")
		return nil, nil
	}
	fmt.Fprintf(out, "Found %d chapter files.\n", len(files))

	dates, err := Schedule(r.Start, r.End, len(files))
	if err != nil {
		return nil, err
	}
	total := days(r.Start, r.End)
	fmt.Fprintf(out, "Date range: %s to %s (%d days)\n", r.Start.Format(DateLayout), r.End.Format(DateLayout), total)
	fmt.Fprintf(out, "Interval: %.2f days\n", Interval(total, len(files)))

	assignments := make([]Assignment, 0, len(files))
	for i, name := range files {
		date := dates[i].Format(DateLayout)
		updated, err := r.apply(filepath.Join(r.Dir, name), date)
		if err != nil {
			return assignments, err
		}
		assignments = append(assignments, Assignment{File: name, Date: date, Updated: updated})

		switch {
		case updated && r.DryRun:
			fmt.Fprintf(out, "Would update %s to %s\n", name, date)
		case updated:
			fmt.Fprintf(out, "Updated %s to %s\n", name, date)
		default:
			fmt.Fprintf(out, "Skipped %s (no change or date not found)\n", name)
		}
	}
	return assignments, nil
}

func (r *Redistributor) apply(path, date string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	next, changed := frontmatter.SetDate(string(content), date)
	if !changed || r.DryRun {
		return changed, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(next), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// ParseDate parses an ISO YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
