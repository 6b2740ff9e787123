// Package scaffold provides the embedded template for the default
// blogtools.yaml written by `blogtools init`.
package scaffold

import "embed"

// Templates contains all scaffold template files.
// Files use Go text/template syntax with sprig functions and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// ConfigTemplate is the path of the config template inside Templates.
const ConfigTemplate = "templates/blogtools.yaml.tmpl"
