package md2site

import (
	"log/slog"
	"time"
)

// Unknown fence language policies, see WithUnknownLanguage.
const (
	UnknownLanguageFallback = "fallback"
	UnknownLanguageError    = "error"
)

// Defaults applied by NewConverter and NewBuilder.
const (
	DefaultCodeStyle         = "friendly"
	DefaultParagraphMaxWidth = "70ch"
	DefaultTemplate          = "page"
	DefaultStyle             = "default"
	DefaultHomePage          = "index"
)

// DefaultExtensions are the file extensions treated as Markdown.
var DefaultExtensions = []string{".md"}

// Site holds the values shared by every page.
type Site struct {
	Name         string
	Author       string
	Description  string
	Image        string // Open Graph image, empty = omitted
	Lang         string
	Stylesheet   string // Base stylesheet URL, empty = omitted
	HomePage     string // Derived title of the page that gets no home link
	HomeLinkText string
	Footer       string // Trusted HTML
}

// DefaultSite returns the metadata of the built-in personal site.
func DefaultSite() Site {
	return Site{
		Name:         "Jason Connor",
		Author:       "Jason Connor",
		Description:  "Personal website of Jason Connor - Software Engineer",
		Image:        "assets/profile.jpg",
		Lang:         "en",
		Stylesheet:   "https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.classless.min.css",
		HomePage:     DefaultHomePage,
		HomeLinkText: "← Return to homepage",
		Footer:       `© 2025 Jason Connor • Built with <a href="https://picocss.com">Pico CSS</a>`,
	}
}

// Input is one document to convert.
type Input struct {
	Markdown string
	// Title is the derived title, normally the file name without extension.
	// Empty means derive it from Path.
	Title string
	// Path is the page's output path relative to the site root, slash
	// separated ("notes/a.html"). It sets how far links climb to the root.
	Path string
}

// ConvertResult is one rendered page.
type ConvertResult struct {
	HTML []byte
	// Title is the display title: front matter title, else the derived one.
	Title string
	// UnknownLanguages lists fence tags rendered as plain text.
	UnknownLanguages []string
	// Links lists site-relative link and image targets in the page body.
	Links []string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	site              Site
	codeStyle         string
	unknownLanguage   string
	paragraphMaxWidth string
	assetPath         string
	templateName      string
	styleName         string
	logger            *slog.Logger
}

func defaultConverterConfig() converterConfig {
	return converterConfig{
		site:              DefaultSite(),
		codeStyle:         DefaultCodeStyle,
		unknownLanguage:   UnknownLanguageFallback,
		paragraphMaxWidth: DefaultParagraphMaxWidth,
		templateName:      DefaultTemplate,
		styleName:         DefaultStyle,
		logger:            slog.New(slog.DiscardHandler),
	}
}

// WithSite sets the site metadata.
func WithSite(site Site) Option {
	return func(c *Converter) {
		c.cfg.site = site
	}
}

// WithCodeStyle sets the chroma style used for code blocks.
func WithCodeStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.codeStyle = name
	}
}

// WithUnknownLanguage sets the policy for fence languages chroma does not
// know: UnknownLanguageFallback or UnknownLanguageError.
func WithUnknownLanguage(policy string) Option {
	return func(c *Converter) {
		c.cfg.unknownLanguage = policy
	}
}

// WithParagraphMaxWidth sets the CSS max-width of paragraphs. Empty omits
// the style attribute.
func WithParagraphMaxWidth(width string) Option {
	return func(c *Converter) {
		c.cfg.paragraphMaxWidth = width
	}
}

// WithAssetPath sets a directory holding templates/ and styles/ overrides.
// Assets missing there fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTemplate selects the page template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithStyle selects the layout stylesheet by name. Empty means none.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.styleName = name
	}
}

// WithLogger sets the logger for warnings and debug output.
// Nil keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.cfg.logger = logger
		}
	}
}

// ResultKind is what the builder did with a file.
type ResultKind string

// Result kinds.
const (
	KindConverted ResultKind = "converted"
	KindCopied    ResultKind = "copied"
	KindSkipped   ResultKind = "skipped"
)

// FileResult is the outcome of one visited file.
type FileResult struct {
	Kind ResultKind
	// Source is the path relative to the input root.
	Source string
	// Output is the written path on the output filesystem.
	Output   string
	Bytes    int64
	Duration time.Duration
	// Reason explains a skip.
	Reason string
	Err    error
}

// Failed reports whether the file could not be processed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// BrokenLink is a site-relative link with no generated target.
type BrokenLink struct {
	Page string // Output path relative to the output root
	Link string
}

// Report collects the outcome of a build in walk order.
type Report struct {
	Results      []FileResult
	Converted    int
	Copied       int
	Skipped      int
	Failed       int
	BytesWritten int64
	BrokenLinks  []BrokenLink
}

func (r *Report) add(res FileResult) {
	r.Results = append(r.Results, res)
	switch {
	case res.Failed():
		r.Failed++
	case res.Kind == KindConverted:
		r.Converted++
		r.BytesWritten += res.Bytes
	case res.Kind == KindCopied:
		r.Copied++
		r.BytesWritten += res.Bytes
	case res.Kind == KindSkipped:
		r.Skipped++
	}
}

// Failures returns the failed results.
func (r *Report) Failures() []FileResult {
	var failed []FileResult
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}
