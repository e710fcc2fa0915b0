package scaffold

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// Template is a project layout that can be generated.
type Template struct {
	Name        string
	Description string
}

// AllTemplates returns the available templates.
func AllTemplates() []Template {
	return []Template{
		{Name: "cli", Description: "Command-line application built on urfave/cli"},
		{Name: "http", Description: "HTTP service with graceful shutdown"},
		{Name: "lib", Description: "Reusable Go library"},
	}
}

// TemplateNames returns the names of all templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, &UnknownTemplateError{Name: name}
}

// UnknownTemplateError is returned for a template name that does not exist.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q (available: %s)", e.Name, strings.Join(TemplateNames(), ", "))
}
