// Package web embeds the HTML served to browsers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFiles embed.FS

// SettingsTemplate is the name of the alarm settings page.
const SettingsTemplate = "settings.html"

// Templates parses every embedded template.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFiles, "templates/*.html")
}
