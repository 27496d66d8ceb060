package templates

import (
	"embed"
	"html/template"
	"io/fs"
)

// Static holds the page templates shipped with the binary.
//go:embed static/*.tmpl
var Static embed.FS

// All holds all parsed page templates.
var All *template.Template

// SetupTemplates parses templates and sets a global variable with the output.
func SetupTemplates(fsys fs.FS) error {
	var err error
	All, err = template.ParseFS(fsys, "static/*.tmpl")
	return err
}
