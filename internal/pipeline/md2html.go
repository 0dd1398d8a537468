package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Fragment is the rendered body of one document.
type Fragment struct {
	HTML string
	// UnknownLanguages lists fence tags chroma had no lexer for, in
	// document order, without duplicates.
	UnknownLanguages []string
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (*Fragment, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark
// with the site's node renderer.
type GoldmarkConverter struct {
	md          goldmark.Markdown
	highlighter *CodeHighlighter
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions,
// footnotes and chroma highlighting for code blocks.
func NewGoldmarkConverter(highlighter *CodeHighlighter, paragraphMaxWidth string) *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			renderer.WithNodeRenderers(
				util.Prioritized(NewSiteRenderer(highlighter, paragraphMaxWidth), 100),
			),
			// No WithUnsafe: SiteRenderer escapes raw HTML.
		),
	)
	return &GoldmarkConverter{md: md, highlighter: highlighter}
}

// ToHTML converts Markdown content to a body fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		fragment *Fragment
		err      error
	}

	done := make(chan result, 1)

	go func() {
		source := []byte(content)
		doc := c.md.Parser().Parse(text.NewReader(source))
		unknown := c.unknownLanguages(doc, source)

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %w", ErrHTMLConversion, err)}
			return
		}
		done <- result{fragment: &Fragment{HTML: buf.String(), UnknownLanguages: unknown}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.fragment, r.err
	}
}

// unknownLanguages walks the fenced code blocks before rendering so callers
// learn which tags fell back to plain text.
func (c *GoldmarkConverter) unknownLanguages(doc ast.Node, source []byte) []string {
	var langs []string
	seen := make(map[string]bool)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		var info string
		if block.Info != nil {
			info = string(block.Info.Segment.Value(source))
		}
		lang := FenceLanguage(info)
		if !seen[lang] && !c.highlighter.Known(lang) {
			seen[lang] = true
			langs = append(langs, lang)
		}
		return ast.WalkSkipChildren, nil
	})
	return langs
}
