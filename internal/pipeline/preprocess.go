package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/jlconnor/md2site/internal/yamlutil"
)

// ErrFrontMatter indicates a leading --- block that could not be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

const byteOrderMark = "\uFEFF"

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// yamlFrontMatter recognizes only the --- delimited YAML form.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yamlutil.UnmarshalFrontMatter)

// FrontMatter holds the page metadata a Markdown file may declare.
// Unknown keys are ignored.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes text before it reaches the parser.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown drops a leading byte order mark and converts \r\n and
// \r line endings to \n.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitFrontMatter separates a leading YAML block from the Markdown body.
// The block is front matter only when it is a mapping that sets title or
// description. Anything else, such as a thematic break over a setext
// heading, comes back unchanged as content with a zero FrontMatter.
// On ErrFrontMatter the original content is returned alongside the error.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var block any
	rest, err := frontmatter.Parse(strings.NewReader(content), &block, yamlFrontMatter)
	if err != nil {
		return FrontMatter{}, content, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	if !hasPageKey(block) {
		return FrontMatter{}, content, nil
	}

	var fm FrontMatter
	if _, err := frontmatter.Parse(strings.NewReader(content), &fm, yamlFrontMatter); err != nil {
		return FrontMatter{}, content, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return fm, string(rest), nil
}

// hasPageKey reports whether a decoded block sets a FrontMatter field.
func hasPageKey(block any) bool {
	var keys []string
	switch m := block.(type) {
	case map[string]any:
		for k := range m {
			keys = append(keys, k)
		}
	case map[any]any:
		for k := range m {
			if s, ok := k.(string); ok {
				keys = append(keys, s)
			}
		}
	}
	for _, k := range keys {
		if k == "title" || k == "description" {
			return true
		}
	}
	return false
}
