// Package schemas embeds the JSON Schemas for documents accepted by resume-pdf.
package schemas

import (
	"embed"
	"io/fs"
)

// Schema file names
const (
	RenderRequest = "render_request.schema.json"
	Config        = "config.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the contents of the named schema
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files
func Names() []string {
	names, _ := fs.Glob(files, "*.schema.json")
	return names
}
