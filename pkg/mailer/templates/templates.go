package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
)

//go:embed *.tmpl
var FS embed.FS

// Welcome is the template name used for the post-registration email.
const Welcome = "welcome"

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return fallback
	}
	if value == nil {
		return fallback
	}
	return value
}

// RenderHTML renders the named template with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	t, err := htmpl.New(name + ".tmpl").Funcs(htmpl.FuncMap{"default": defaultFn}).ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// SubjectFor picks a subject line for a template.
func SubjectFor(name string) string {
	switch strings.ToLower(name) {
	case Welcome:
		return "Welcome to StreamChat"
	default:
		return "Notification"
	}
}
