package compile

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"cssthis/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	CSS    string
	Name   string
	Source string
	Format string
}

var literalEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`")

// EscapeTemplateLiteral prepares css text for embedding into a js template
// literal. Placeholders stay live: "${" is not escaped.
func EscapeTemplateLiteral(css string) string {
	return literalEscaper.Replace(css)
}

func parseTemplate(name config.TemplateFieldName, field string) (*template.Template, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	return tmpl, nil
}

func expandTemplate(tmpl *template.Template, values Values) (string, error) {
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
