package composer

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/article.md.tmpl
var templatesFS embed.FS

const bodyTemplateName = "article.md.tmpl"

// bodyData feeds the article template.
type bodyData struct {
	Title           string
	SourceName      string
	SourceURL       string
	CategoryLabel   string
	Summary         string
	KeyFacts        []string
	Analysis        string
	FactCheckStatus string
	Dated           bool
	Date            string
	Time            string
	Byline          string
	Synthetic       bool
}

// loadBodyTemplate parses the file at path, or the embedded default when path is empty.
func loadBodyTemplate(path string) (*template.Template, error) {
	if path == "" {
		tmpl, err := template.New(bodyTemplateName).ParseFS(templatesFS, "templates/"+bodyTemplateName)
		if err != nil {
			return nil, fmt.Errorf("parse embedded body template: %w", err)
		}
		return tmpl, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read body template %s: %w", path, err)
	}
	tmpl, err := template.New(bodyTemplateName).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse body template %s: %w", path, err)
	}
	return tmpl, nil
}

func renderBody(tmpl *template.Template, data bodyData) string {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		// A broken custom template still yields a usable article.
		return fmt.Sprintf("# %s\n\n%s\n", data.Title, data.Summary)
	}
	return b.String()
}
