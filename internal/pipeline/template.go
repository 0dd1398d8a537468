package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrTemplateRender indicates the page template failed to execute.
var ErrTemplateRender = errors.New("page template rendering failed")

// PageData is everything the page template sees.
type PageData struct {
	Lang        string
	SiteName    string
	Title       string
	Description string
	Author      string
	Image       string
	Stylesheet  string
	// CSS is layout rules plus highlighting rules, already sanitized.
	CSS template.CSS
	// Root is "" for top-level pages and "../" per directory level below.
	Root           string
	ShowHomeLink   bool
	HomeLinkText   string
	ParagraphStyle template.CSS
	Body           template.HTML
	Footer         template.HTML
}

// PageRenderer defines the contract for wrapping a fragment in a page.
type PageRenderer interface {
	RenderPage(ctx context.Context, data *PageData) (string, error)
}

// PageTemplate renders complete pages from a parsed html/template.
type PageTemplate struct {
	tmpl *template.Template
}

// NewPageTemplate parses template content.
// Returns error if the template cannot be parsed.
func NewPageTemplate(tmplContent string) (*PageTemplate, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageTemplate{tmpl: tmpl}, nil
}

// RenderPage executes the template with data.
func (p *PageTemplate) RenderPage(ctx context.Context, data *PageData) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if data == nil {
		return "", fmt.Errorf("%w: nil page data", ErrTemplateRender)
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// SanitizeCSS escapes sequences that could break out of a <style> block.
func SanitizeCSS(css string) template.CSS {
	return template.CSS(strings.ReplaceAll(css, "</", `<\/`)) // #nosec G203 -- closing sequences escaped
}

// RootPrefix returns the relative path from a page at relPath back to the
// site root: "" for "index.html", "../" for "notes/a.html".
func RootPrefix(relPath string) string {
	relPath = strings.ReplaceAll(relPath, `\`, "/")
	depth := strings.Count(strings.Trim(relPath, "/"), "/")
	return strings.Repeat("../", depth)
}
