package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jlconnor/md2site"
)

// ---------------------------------------------------------------------------
// TestPrintResult - Per-file console lines
// ---------------------------------------------------------------------------

func TestPrintResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		res        md2site.FileResult
		quiet      bool
		verbose    bool
		wantStdout string
		wantStderr string
	}{
		{
			name:       "converted",
			res:        md2site.FileResult{Kind: md2site.KindConverted, Source: "notes/a.md"},
			wantStdout: "Converted notes/a.md to HTML.\n",
		},
		{
			name:       "copied",
			res:        md2site.FileResult{Kind: md2site.KindCopied, Source: "p.jpg", Output: "out/p.jpg"},
			wantStdout: "Copied p.jpg to out/p.jpg.\n",
		},
		{
			name:       "empty file",
			res:        md2site.FileResult{Kind: md2site.KindSkipped, Source: "e.md", Reason: "empty file"},
			wantStdout: "Skipping empty file: e.md\n",
		},
		{
			name:       "other skip",
			res:        md2site.FileResult{Kind: md2site.KindSkipped, Source: "fifo", Reason: "not a regular file"},
			wantStdout: "Skipping fifo: not a regular file\n",
		},
		{
			name:       "verbose duration",
			res:        md2site.FileResult{Kind: md2site.KindConverted, Source: "a.md", Duration: 1500 * time.Microsecond},
			verbose:    true,
			wantStdout: "Converted a.md to HTML. (1.5ms)\n",
		},
		{
			name:  "quiet hides success",
			res:   md2site.FileResult{Kind: md2site.KindConverted, Source: "a.md"},
			quiet: true,
		},
		{
			name:       "failure always shown",
			res:        md2site.FileResult{Kind: md2site.KindConverted, Source: "bad.md", Err: errors.New("boom")},
			quiet:      true,
			wantStderr: "FAILED bad.md: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			p := &resultPrinter{
				env:     &Environment{Stdout: &stdout, Stderr: &stderr},
				quiet:   tt.quiet,
				verbose: tt.verbose,
			}
			p.printResult(tt.res)

			if stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if stderr.String() != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrintSummary - Counts and humanized size
// ---------------------------------------------------------------------------

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	report := &md2site.Report{Converted: 3, Copied: 2, Skipped: 1, Failed: 1, BytesWritten: 1234}

	t.Run("normal", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer
		p := &resultPrinter{env: &Environment{Stdout: &stdout}}
		p.printSummary(report, 2*time.Second)

		want := "\n3 converted, 2 copied, 1 skipped, 1 failed (1.2 kB written)\n"
		if stdout.String() != want {
			t.Errorf("summary = %q, want %q", stdout.String(), want)
		}
	})

	t.Run("verbose adds elapsed", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer
		p := &resultPrinter{env: &Environment{Stdout: &stdout}, verbose: true}
		p.printSummary(report, 2*time.Second)

		if !strings.HasSuffix(stdout.String(), " in 2s\n") {
			t.Errorf("summary = %q, want elapsed time", stdout.String())
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer
		p := &resultPrinter{env: &Environment{Stdout: &stdout}, quiet: true}
		p.printSummary(report, time.Second)

		if stdout.Len() != 0 {
			t.Errorf("quiet summary = %q, want empty", stdout.String())
		}
	})
}

func TestPrintBrokenLinks(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	p := &resultPrinter{env: &Environment{Stderr: &stderr}}
	p.printBrokenLinks([]md2site.BrokenLink{
		{Page: "index.html", Link: "gone.html"},
		{Page: "notes/a.html", Link: "../x.png"},
	})

	want := "BROKEN LINK index.html -> gone.html\nBROKEN LINK notes/a.html -> ../x.png\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}
