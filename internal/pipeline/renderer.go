package pipeline

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// SiteRenderer overrides goldmark's HTML output for the block and link nodes
// the site styles. Everything else falls through to goldmark's renderer.
type SiteRenderer struct {
	html.Config
	paragraphStyle string
	highlighter    *CodeHighlighter
}

// NewSiteRenderer creates the node renderer. An empty paragraphMaxWidth
// omits the paragraph style attribute.
func NewSiteRenderer(highlighter *CodeHighlighter, paragraphMaxWidth string) *SiteRenderer {
	r := &SiteRenderer{
		Config:      html.NewConfig(),
		highlighter: highlighter,
	}
	if paragraphMaxWidth != "" {
		r.paragraphStyle = "max-width: " + paragraphMaxWidth
	}
	return r
}

// SetOption lets goldmark's renderer options (XHTML, Unsafe) reach us.
func (r *SiteRenderer) SetOption(name renderer.OptionName, value any) {
	r.Config.SetOption(name, value)
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *SiteRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *SiteRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	level := strconv.Itoa(n.Level)
	if entering {
		_, _ = w.WriteString(`<h` + level + ` class="h` + level + `">`)
	} else {
		_, _ = w.WriteString("</h" + level + ">\n")
	}
	return ast.WalkContinue, nil
}

func (r *SiteRenderer) renderParagraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.openParagraph(w)
	} else {
		_, _ = w.WriteString("</p>\n")
	}
	return ast.WalkContinue, nil
}

func (r *SiteRenderer) openParagraph(w util.BufWriter) {
	_, _ = w.WriteString(`<p class="p"`)
	if r.paragraphStyle != "" {
		_, _ = w.WriteString(` style="`)
		_, _ = w.Write(util.EscapeHTML([]byte(r.paragraphStyle)))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
}

// renderHTMLBlock shows a raw HTML block as escaped text in its own
// paragraph. Pages never carry author markup.
func (r *SiteRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)

	var raw bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		raw.Write(line.Value(source))
	}
	if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(source))
	}

	r.openParagraph(w)
	_, _ = w.Write(util.EscapeHTML(bytes.TrimSpace(raw.Bytes())))
	_, _ = w.WriteString("</p>\n")
	return ast.WalkSkipChildren, nil
}

// renderRawHTML shows inline tags as escaped text.
func (r *SiteRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		_, _ = w.Write(util.EscapeHTML(segment.Value(source)))
	}
	return ast.WalkSkipChildren, nil
}

func (r *SiteRenderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tag := "ul"
	if n.IsOrdered() {
		tag = "ol"
	}
	if entering {
		_, _ = w.WriteString(`<` + tag + ` class="` + tag + `"`)
		if n.IsOrdered() && n.Start != 1 {
			_, _ = w.WriteString(` start="` + strconv.Itoa(n.Start) + `"`)
		}
		_, _ = w.WriteString(">\n")
	} else {
		_, _ = w.WriteString("</" + tag + ">\n")
	}
	return ast.WalkContinue, nil
}

func (r *SiteRenderer) renderListItem(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<li class="li">`)
		if fc := n.FirstChild(); fc != nil {
			if _, ok := fc.(*ast.TextBlock); !ok {
				_ = w.WriteByte('\n')
			}
		}
	} else {
		_, _ = w.WriteString("</li>\n")
	}
	return ast.WalkContinue, nil
}

func (r *SiteRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	var info string
	if n.Info != nil {
		info = string(n.Info.Segment.Value(source))
	}
	if err := r.writeCode(w, source, n, FenceLanguage(info)); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func (r *SiteRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if err := r.writeCode(w, source, node, DefaultLanguage); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// writeCode emits <pre class="chroma"><code class="language-X">…</code></pre>.
// The chroma class is what the generated style rules are scoped to.
func (r *SiteRenderer) writeCode(w util.BufWriter, source []byte, n ast.Node, lang string) error {
	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	var highlighted bytes.Buffer
	if err := r.highlighter.Highlight(&highlighted, code.String(), lang); err != nil {
		return err
	}

	_, _ = w.WriteString(`<pre class="chroma"><code class="language-`)
	_, _ = w.Write(util.EscapeHTML([]byte(lang)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(highlighted.Bytes())
	_, _ = w.WriteString("</code></pre>\n")
	return nil
}

func (r *SiteRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	dest := []byte(RewriteLinkURL(string(n.Destination)))
	if entering {
		_, _ = w.WriteString(`<a href="`)
		if r.Unsafe || !html.IsDangerousURL(dest) {
			_, _ = w.Write(util.EscapeHTML(util.URLEscape(dest, true)))
		}
		_ = w.WriteByte('"')
		if len(n.Title) > 0 {
			_, _ = w.WriteString(` title="`)
			r.Writer.Write(w, n.Title)
			_ = w.WriteByte('"')
		}
		_ = w.WriteByte('>')
		return ast.WalkContinue, nil
	}

	if n.ChildCount() == 0 {
		_, _ = w.Write(util.EscapeHTML(dest))
	}
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}
