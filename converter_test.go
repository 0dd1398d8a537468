package md2site

// Notes:
// - Pipeline stages are swapped for mocks by assigning the unexported fields
//   after NewConverter, so data flow and error wrapping are tested without
//   depending on goldmark output details.
// - Full-output tests run the real pipeline with the embedded template.
// - Log assertions use a slog text handler writing to a buffer.

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlconnor/md2site/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockHTMLConverter struct {
	called bool
	input  string
	output *pipeline.Fragment
	err    error
}

func (m *mockHTMLConverter) ToHTML(ctx context.Context, content string) (*pipeline.Fragment, error) {
	m.called = true
	m.input = content
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return &pipeline.Fragment{HTML: "<p>" + content + "</p>"}, nil
}

type panicPreprocessor struct{}

func (p *panicPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	panic("boom")
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"other style", []Option{WithCodeStyle("monokai")}, nil},
		{"style case insensitive", []Option{WithCodeStyle("Monokai")}, nil},
		{"error policy", []Option{WithUnknownLanguage(UnknownLanguageError)}, nil},
		{"no layout style", []Option{WithStyle("")}, nil},
		{"empty paragraph width", []Option{WithParagraphMaxWidth("")}, nil},
		{"unknown style", []Option{WithCodeStyle("no-such-style")}, ErrUnknownStyle},
		{"unknown policy", []Option{WithUnknownLanguage("ignore")}, ErrInvalidOption},
		{"width breaks out of attribute", []Option{WithParagraphMaxWidth(`70ch" onload="x`)}, ErrInvalidOption},
		{"missing template", []Option{WithTemplate("nope")}, ErrTemplateNotFound},
		{"missing layout style", []Option{WithStyle("nope")}, ErrStyleNotFound},
		{"asset path missing", []Option{WithAssetPath("/nonexistent/md2site/assets")}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() unexpected error: %v", err)
			}
			if conv.page == nil || conv.htmlConverter == nil {
				t.Error("NewConverter() left pipeline stages unset")
			}
		})
	}
}

func TestNewConverter_UnknownStyleHint(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithCodeStyle("no-such-style"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "hint:") || !strings.Contains(err.Error(), "friendly") {
		t.Errorf("error should list available styles, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Full pipeline
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	tests := []struct {
		name         string
		input        Input
		wantTitle    string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:      "top level page",
			input:     Input{Markdown: "# About\n\nHello.\n", Path: "about.html"},
			wantTitle: "about",
			wantContains: []string{
				"<title>Jason Connor - about</title>",
				`<h1 class="h1">About</h1>`,
				`<p class="p" style="max-width: 70ch">Hello.</p>`,
				`<a href="index.html">← Return to homepage</a>`,
				".chroma {",
				"body > header",
			},
		},
		{
			name:       "home page has no home link",
			input:      Input{Markdown: "Welcome.\n", Path: "index.html"},
			wantTitle:  "index",
			wantAbsent: []string{"Return to homepage"},
		},
		{
			name:      "nested page climbs to root",
			input:     Input{Markdown: "Post.\n", Path: "notes/2024/post.html"},
			wantTitle: "post",
			wantContains: []string{
				`<a href="../../index.html">Jason Connor</a>`,
				`<a href="../../index.html">← Return to homepage</a>`,
			},
		},
		{
			name:      "explicit title wins over path",
			input:     Input{Markdown: "Text.\n", Title: "resume", Path: "cv.html"},
			wantTitle: "resume",
			wantContains: []string{
				"<title>Jason Connor - resume</title>",
			},
		},
		{
			name: "front matter sets title and description",
			input: Input{
				Markdown: "---\ntitle: My Projects\ndescription: Things I built\n---\n# Projects\n",
				Path:     "projects.html",
			},
			wantTitle: "My Projects",
			wantContains: []string{
				"<title>Jason Connor - My Projects</title>",
				`<meta name="description" content="Things I built">`,
			},
			wantAbsent: []string{"title: My Projects"},
		},
		{
			name:      "invalid front matter renders as content",
			input:     Input{Markdown: "---\ntitle: [unclosed\n---\nBody.\n", Path: "broken.html"},
			wantTitle: "broken",
			wantContains: []string{
				"unclosed",
				"Body.",
			},
		},
		{
			name:      "crlf and bom normalized",
			input:     Input{Markdown: "\uFEFF# Title\r\n\r\nText.\r\n", Path: "crlf.html"},
			wantTitle: "crlf",
			wantContains: []string{
				`<h1 class="h1">Title</h1>`,
			},
			wantAbsent: []string{"\r", "\uFEFF#"},
		},
		{
			name:      "title is escaped",
			input:     Input{Markdown: "x\n", Title: "<b>bold</b>", Path: "b.html"},
			wantTitle: "<b>bold</b>",
			wantContains: []string{
				"<title>Jason Connor - &lt;b&gt;bold&lt;/b&gt;</title>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := conv.Convert(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if result.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", result.Title, tt.wantTitle)
			}
			page := string(result.HTML)
			for _, want := range tt.wantContains {
				if !strings.Contains(page, want) {
					t.Errorf("page missing %q", want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(page, absent) {
					t.Errorf("page should not contain %q", absent)
				}
			}
		})
	}
}

func TestConvert_Links(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	md := "[a](about.md) [b](notes/x) [c](https://example.com) [d](#top) ![p](assets/p.jpg)\n"

	result, err := conv.Convert(context.Background(), Input{Markdown: md, Path: "index.html"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := []string{"about.html", "notes/x.html", "assets/p.jpg"}
	if len(result.Links) != len(want) {
		t.Fatalf("Links = %v, want %v", result.Links, want)
	}
	for i := range want {
		if result.Links[i] != want[i] {
			t.Errorf("Links[%d] = %q, want %q", i, result.Links[i], want[i])
		}
	}
}

func TestConvert_EmptyMarkdown(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	tests := []struct {
		name string
		md   string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\t\n"},
		{"byte order mark only", "\uFEFF\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := conv.Convert(context.Background(), Input{Markdown: tt.md, Path: "x.html"})
			if !errors.Is(err, ErrEmptyMarkdown) {
				t.Errorf("Convert() error = %v, want ErrEmptyMarkdown", err)
			}
		})
	}
}

func TestConvert_FrontMatterOnly(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	result, err := conv.Convert(context.Background(), Input{
		Markdown: "---\ntitle: Nothing Yet\n---\n\n",
		Path:     "soon.html",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if result.Title != "Nothing Yet" {
		t.Errorf("Title = %q, want %q", result.Title, "Nothing Yet")
	}
	if !strings.Contains(string(result.HTML), "<title>Jason Connor - Nothing Yet</title>") {
		t.Error("page should carry the front matter title")
	}
}

func TestConvert_UnknownLanguage(t *testing.T) {
	t.Parallel()

	md := "```nosuchlang\nx := 1\n```\n"

	t.Run("fallback logs a warning", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
		conv := newTestConverter(t, WithLogger(logger))

		result, err := conv.Convert(context.Background(), Input{Markdown: md, Path: "code.html"})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if !strings.Contains(string(result.HTML), `class="language-nosuchlang"`) {
			t.Error("fallback should keep the original language class")
		}
		if len(result.UnknownLanguages) != 1 || result.UnknownLanguages[0] != "nosuchlang" {
			t.Errorf("UnknownLanguages = %v", result.UnknownLanguages)
		}
		if !strings.Contains(logs.String(), "language=nosuchlang") {
			t.Errorf("expected warning in logs, got %q", logs.String())
		}
	})

	t.Run("error policy fails", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithUnknownLanguage(UnknownLanguageError))

		_, err := conv.Convert(context.Background(), Input{Markdown: md, Path: "code.html"})
		if !errors.Is(err, ErrUnknownLanguage) {
			t.Fatalf("Convert() error = %v, want ErrUnknownLanguage", err)
		}
		if !errors.Is(err, ErrHTMLConversion) {
			t.Errorf("error should also wrap ErrHTMLConversion: %v", err)
		}
		if !strings.Contains(err.Error(), "nosuchlang") {
			t.Errorf("error should name the language: %v", err)
		}
		if !strings.Contains(err.Error(), `hint: check the fence tag "nosuchlang"`) {
			t.Errorf("error should carry the fence tag hint: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvert with mocked stages - Data flow and errors
// ---------------------------------------------------------------------------

func TestConvert_FrontMatterStrippedBeforeConversion(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	mock := &mockHTMLConverter{}
	conv.htmlConverter = mock

	_, err := conv.Convert(context.Background(), Input{
		Markdown: "---\ntitle: T\n---\nBody text\n",
		Path:     "p.html",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !mock.called {
		t.Fatal("HTML converter not called")
	}
	if mock.input != "Body text\n" {
		t.Errorf("converter input = %q, want %q", mock.input, "Body text\n")
	}
}

func TestConvert_HTMLConverterError(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	conv.htmlConverter = &mockHTMLConverter{err: pipeline.ErrHTMLConversion}

	_, err := conv.Convert(context.Background(), Input{Markdown: "x", Path: "p.html"})
	if !errors.Is(err, ErrHTMLConversion) {
		t.Errorf("Convert() error = %v, want ErrHTMLConversion", err)
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	conv.preprocessor = &panicPreprocessor{}

	_, err := conv.Convert(context.Background(), Input{Markdown: "x", Path: "p.html"})
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	if !strings.Contains(err.Error(), "internal error: boom") {
		t.Errorf("error = %v, want recovered panic message", err)
	}
}

func TestConvert_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Markdown: "# Title", Path: "p.html"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert options - Site, paragraph width, custom assets
// ---------------------------------------------------------------------------

func TestConvert_Options(t *testing.T) {
	t.Parallel()

	site := Site{
		Name:         "Docs",
		Lang:         "fr",
		HomePage:     "home",
		HomeLinkText: "Back",
		Footer:       "<em>footer</em>",
	}
	conv := newTestConverter(t,
		WithSite(site),
		WithParagraphMaxWidth(""),
		WithStyle(""),
	)

	result, err := conv.Convert(context.Background(), Input{Markdown: "Para.\n", Path: "index.html"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	page := string(result.HTML)

	for _, want := range []string{
		`<html lang="fr">`,
		"<title>Docs - index</title>",
		`<p class="p">Para.</p>`,
		`<a href="index.html">Back</a>`,
		"<small><em>footer</em></small>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	for _, absent := range []string{"max-width", "body > header", "og:image", "stylesheet"} {
		if strings.Contains(page, absent) {
			t.Errorf("page should not contain %q", absent)
		}
	}
}

func TestConvert_CustomTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o750); err != nil {
		t.Fatal(err)
	}
	tmpl := "<html><title>{{.Title}}</title><body>{{.Body}}</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.html"), []byte(tmpl), 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	conv := newTestConverter(t, WithAssetPath(dir), WithLogger(logger))
	if !strings.Contains(logs.String(), "customDir=true") {
		t.Errorf("expected asset debug log naming the custom directory, got %q", logs.String())
	}

	result, err := conv.Convert(context.Background(), Input{Markdown: "# Hi\n", Path: "hi.html"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := `<html><title>hi</title><body><h1 class="h1">Hi</h1>` + "\n</body></html>"
	if string(result.HTML) != want {
		t.Errorf("page = %q, want %q", result.HTML, want)
	}
}

// ---------------------------------------------------------------------------
// TestDeriveTitle
// ---------------------------------------------------------------------------

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"index.html", "index"},
		{"notes/a.b.html", "a.b"},
		{`notes\win.html`, "win"},
		{"README", "README"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := deriveTitle(tt.path); got != tt.want {
				t.Errorf("deriveTitle(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
