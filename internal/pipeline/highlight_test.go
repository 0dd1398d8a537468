package pipeline

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewCodeHighlighter(t *testing.T) {
	t.Parallel()

	t.Run("known style generates scoped CSS", func(t *testing.T) {
		t.Parallel()

		h, err := NewCodeHighlighter("friendly", FallbackToPlainText)
		if err != nil {
			t.Fatalf("NewCodeHighlighter() error = %v", err)
		}
		css := h.CSS()
		if !strings.Contains(css, ".chroma {") {
			t.Errorf("CSS() missing .chroma wrapper rule:\n%s", css)
		}
		if !strings.Contains(css, ".chroma .k {") {
			t.Errorf("CSS() missing keyword rule:\n%s", css)
		}
	})

	t.Run("style names are case-insensitive", func(t *testing.T) {
		t.Parallel()

		if _, err := NewCodeHighlighter("Monokai", FallbackToPlainText); err != nil {
			t.Errorf("NewCodeHighlighter(Monokai) error = %v", err)
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := NewCodeHighlighter("no-such-style", FallbackToPlainText)
		if !errors.Is(err, ErrUnknownStyle) {
			t.Errorf("NewCodeHighlighter() error = %v, want ErrUnknownStyle", err)
		}
	})
}

func TestCodeHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("known language gets token spans", func(t *testing.T) {
		t.Parallel()

		h, err := NewCodeHighlighter("friendly", FailOnUnknown)
		if err != nil {
			t.Fatalf("NewCodeHighlighter() error = %v", err)
		}

		var buf bytes.Buffer
		if err := h.Highlight(&buf, "func main() {}\n", "go"); err != nil {
			t.Fatalf("Highlight() error = %v", err)
		}
		got := buf.String()
		if !strings.Contains(got, `<span class="kd">func</span>`) {
			t.Errorf("Highlight() = %q, want keyword span", got)
		}
		if strings.Contains(got, "<pre") {
			t.Errorf("Highlight() = %q, should not wrap in <pre>", got)
		}
	})

	t.Run("output is escaped", func(t *testing.T) {
		t.Parallel()

		h, err := NewCodeHighlighter("friendly", FallbackToPlainText)
		if err != nil {
			t.Fatalf("NewCodeHighlighter() error = %v", err)
		}

		var buf bytes.Buffer
		if err := h.Highlight(&buf, "<script>alert(1)</script>\n", "text"); err != nil {
			t.Fatalf("Highlight() error = %v", err)
		}
		if strings.Contains(buf.String(), "<script>") {
			t.Errorf("Highlight() = %q, want escaped markup", buf.String())
		}
	})

	t.Run("unknown language falls back", func(t *testing.T) {
		t.Parallel()

		h, err := NewCodeHighlighter("friendly", FallbackToPlainText)
		if err != nil {
			t.Fatalf("NewCodeHighlighter() error = %v", err)
		}

		var buf bytes.Buffer
		if err := h.Highlight(&buf, "some words\n", "nosuchlang"); err != nil {
			t.Fatalf("Highlight() error = %v", err)
		}
		if !strings.Contains(buf.String(), "some words") {
			t.Errorf("Highlight() = %q, want plain text", buf.String())
		}
	})

	t.Run("unknown language fails", func(t *testing.T) {
		t.Parallel()

		h, err := NewCodeHighlighter("friendly", FailOnUnknown)
		if err != nil {
			t.Fatalf("NewCodeHighlighter() error = %v", err)
		}

		err = h.Highlight(&bytes.Buffer{}, "x\n", "nosuchlang")
		if !errors.Is(err, ErrUnknownLanguage) {
			t.Fatalf("Highlight() error = %v, want ErrUnknownLanguage", err)
		}
		if !strings.Contains(err.Error(), "nosuchlang") {
			t.Errorf("error %q should name the language", err)
		}
		var langErr *LanguageError
		if !errors.As(err, &langErr) || langErr.Lang != "nosuchlang" {
			t.Errorf("Highlight() error = %#v, want *LanguageError for nosuchlang", err)
		}
	})
}

func TestFenceLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want string
	}{
		{"", "text"},
		{"   ", "text"},
		{"go", "go"},
		{"python title=x.py", "python"},
		{"rust\t{.numberLines}", "rust"},
	}

	for _, tt := range tests {
		if got := FenceLanguage(tt.info); got != tt.want {
			t.Errorf("FenceLanguage(%q) = %q, want %q", tt.info, got, tt.want)
		}
	}
}
