package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighting errors.
var (
	ErrUnknownLanguage = errors.New("unknown code block language")
	ErrUnknownStyle    = errors.New("unknown highlight style")
)

// LanguageError is returned under FailOnUnknown for a fence tag chroma has
// no lexer for. It matches ErrUnknownLanguage.
type LanguageError struct {
	Lang string
}

func (e *LanguageError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownLanguage, e.Lang)
}

func (e *LanguageError) Is(target error) bool {
	return target == ErrUnknownLanguage
}

// DefaultLanguage is used for code blocks without an info string.
const DefaultLanguage = "text"

// LanguagePolicy decides what happens to a fence tag chroma does not know.
type LanguagePolicy int

const (
	// FallbackToPlainText renders the block unhighlighted.
	FallbackToPlainText LanguagePolicy = iota
	// FailOnUnknown fails the conversion with ErrUnknownLanguage.
	FailOnUnknown
)

// CodeHighlighter turns code block text into class-annotated HTML.
// It is read-only after construction.
type CodeHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	policy    LanguagePolicy
	css       string
}

// NewCodeHighlighter creates a highlighter for the named chroma style.
// The style's CSS is generated once here.
func NewCodeHighlighter(styleName string, policy LanguagePolicy) (*CodeHighlighter, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)

	var css strings.Builder
	if err := formatter.WriteCSS(&css, style); err != nil {
		return nil, fmt.Errorf("generating %s style CSS: %w", styleName, err)
	}

	return &CodeHighlighter{
		style:     style,
		formatter: formatter,
		policy:    policy,
		css:       css.String(),
	}, nil
}

// CSS returns the stylesheet rules for the highlighter's style.
func (h *CodeHighlighter) CSS() string {
	return h.css
}

// Known reports whether chroma has a lexer for lang.
func (h *CodeHighlighter) Known(lang string) bool {
	return lexers.Get(lang) != nil
}

// Highlight writes the highlighted tokens of code to w. The surrounding
// <pre><code> markup is the caller's.
func (h *CodeHighlighter) Highlight(w io.Writer, code, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		if h.policy == FailOnUnknown {
			return &LanguageError{Lang: lang}
		}
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenising %s block: %w", lang, err)
	}
	return h.formatter.Format(w, h.style, iterator)
}

// FenceLanguage returns the first whitespace-separated word of a fence info
// string, or DefaultLanguage when there is none.
func FenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return DefaultLanguage
	}
	return fields[0]
}

// StyleNames lists the chroma styles NewCodeHighlighter accepts.
func StyleNames() []string {
	return styles.Names()
}
