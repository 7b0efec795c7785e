package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl assets/*.css
var embeddedFiles embed.FS

// StylesheetName is the baseline stylesheet shipped with the renderer.
const StylesheetName = "dynamicform.css"

// TemplatesFS exposes the embedded layout bundle for consumers that want the
// built-in page shell out of the box.
func TemplatesFS() fs.FS {
	return embeddedFiles
}

// DefaultStylesheet returns the bundled CSS as a string, or "" when the asset
// is missing from the build.
func DefaultStylesheet() string {
	data, err := fs.ReadFile(embeddedFiles, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
