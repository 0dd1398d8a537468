package md2site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/jlconnor/md2site/internal/assets"
	"github.com/jlconnor/md2site/internal/hints"
	"github.com/jlconnor/md2site/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.PageRenderer         = (*pipeline.PageTemplate)(nil)
)

// Converter turns one Markdown document into one complete HTML page.
// Create with NewConverter. Highlighter, parser and template are built once
// and only read afterwards, so a Converter can be reused for every page of
// a site.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	page          pipeline.PageRenderer
	css           template.CSS
}

// NewConverter creates a Converter. Without options it reproduces the
// built-in personal site: friendly code style, 70ch paragraphs, embedded
// page template and layout style.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          defaultConverterConfig(),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	var policy pipeline.LanguagePolicy
	switch c.cfg.unknownLanguage {
	case UnknownLanguageFallback:
		policy = pipeline.FallbackToPlainText
	case UnknownLanguageError:
		policy = pipeline.FailOnUnknown
	default:
		return nil, fmt.Errorf("%w: unknown language policy %q (must be %s or %s)",
			ErrInvalidOption, c.cfg.unknownLanguage, UnknownLanguageFallback, UnknownLanguageError)
	}

	if strings.ContainsAny(c.cfg.paragraphMaxWidth, ";\"'<>{}") {
		return nil, fmt.Errorf("%w: paragraph max width %q is not a CSS length",
			ErrInvalidOption, c.cfg.paragraphMaxWidth)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	highlighter, err := pipeline.NewCodeHighlighter(c.cfg.codeStyle, policy)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(pipeline.StyleNames()))
	}
	c.htmlConverter = pipeline.NewGoldmarkConverter(highlighter, c.cfg.paragraphMaxWidth)

	tmplContent, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	c.page, err = pipeline.NewPageTemplate(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("initializing page template: %w", err)
	}

	var layout string
	if c.cfg.styleName != "" {
		layout, err = c.assetLoader.LoadStyle(c.cfg.styleName)
		if err != nil {
			return nil, fmt.Errorf("loading style %q: %w", c.cfg.styleName, err)
		}
	}
	customDir := false
	if r, ok := c.assetLoader.(*assets.AssetResolver); ok {
		customDir = r.HasCustomLoader()
	}
	c.cfg.logger.Debug("page assets loaded",
		"template", c.cfg.templateName, "style", c.cfg.styleName, "customDir", customDir)

	c.css = pipeline.SanitizeCSS(strings.TrimRight(layout, "\n") + "\n" + highlighter.CSS())

	return c, nil
}

// Convert runs the pipeline for one document: preprocessing, front matter,
// goldmark rendering, page template.
// Returns ErrEmptyMarkdown when the text is empty or only whitespace. A
// document holding nothing but front matter still becomes a page.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if strings.TrimSpace(md) == "" {
		return nil, ErrEmptyMarkdown
	}

	meta, body, err := pipeline.SplitFrontMatter(md)
	if err != nil {
		c.cfg.logger.Warn("front matter ignored, rendering the block as content",
			"page", input.Path, "error", err)
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, body)
	if err != nil {
		var langErr *pipeline.LanguageError
		if errors.As(err, &langErr) {
			return nil, fmt.Errorf("converting to HTML: %w%s", err, hints.ForUnknownLanguage(langErr.Lang))
		}
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	for _, lang := range fragment.UnknownLanguages {
		c.cfg.logger.Warn("unknown code block language, rendered as plain text",
			"page", input.Path, "language", lang)
	}

	derived := input.Title
	if derived == "" {
		derived = deriveTitle(input.Path)
	}
	title := derived
	if meta.Title != "" {
		title = meta.Title
	}
	description := c.cfg.site.Description
	if meta.Description != "" {
		description = meta.Description
	}

	site := c.cfg.site
	data := &pipeline.PageData{
		Lang:         site.Lang,
		SiteName:     site.Name,
		Title:        title,
		Description:  description,
		Author:       site.Author,
		Image:        site.Image,
		Stylesheet:   site.Stylesheet,
		CSS:          c.css,
		Root:         pipeline.RootPrefix(input.Path),
		ShowHomeLink: derived != site.HomePage,
		HomeLinkText: site.HomeLinkText,
		Body:         template.HTML(fragment.HTML), // #nosec G203 -- goldmark output, raw HTML escaped
		Footer:       template.HTML(site.Footer),   // #nosec G203 -- site owner's config
	}
	if c.cfg.paragraphMaxWidth != "" {
		data.ParagraphStyle = template.CSS("max-width: " + c.cfg.paragraphMaxWidth) // #nosec G203 -- validated width
	}

	page, err := c.page.RenderPage(ctx, data)
	if err != nil {
		return nil, err
	}

	links, err := pipeline.LocalLinks(fragment.HTML)
	if err != nil {
		c.cfg.logger.Debug("link extraction failed", "page", input.Path, "error", err)
	}

	return &ConvertResult{
		HTML:             []byte(page),
		Title:            title,
		UnknownLanguages: fragment.UnknownLanguages,
		Links:            links,
	}, nil
}

// deriveTitle returns the base name of p without its extension.
func deriveTitle(p string) string {
	base := path.Base(strings.ReplaceAll(p, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
