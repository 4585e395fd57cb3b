package main

import (
	"html/template"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/web"
)

// LoadTemplates parses the embedded HTML templates
func LoadTemplates() *template.Template {
	return template.Must(web.Templates())
}
