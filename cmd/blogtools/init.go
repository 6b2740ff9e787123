package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/eringen/blogtools"
	"github.com/eringen/blogtools/scaffold"
)

// scaffoldData holds the template variables passed to the config template.
type scaffoldData struct {
	SiteName  string
	PostsDir  string
	PublicDir string
	ImagesDir string
	Start     string
	End       string
}

func runInit(path string, stdout io.Writer) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := blogtools.New(blogtools.Config{}).Config
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	data := scaffoldData{
		SiteName:  toTitle(filepath.Base(wd)),
		PostsDir:  cfg.PostsDir,
		PublicDir: cfg.PublicDir,
		ImagesDir: cfg.ImagesDir,
		Start:     cfg.Dates.Start,
		End:       cfg.Dates.End,
	}

	content, err := scaffold.Templates.ReadFile(scaffold.ConfigTemplate)
	if err != nil {
		return fmt.Errorf("read %s: %w", scaffold.ConfigTemplate, err)
	}
	tmpl, err := template.New(filepath.Base(scaffold.ConfigTemplate)).Funcs(sprig.TxtFuncMap()).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	fmt.Fprintf(stdout, "  created %s\n", path)
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
