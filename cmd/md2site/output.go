package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jlconnor/md2site"
)

// resultPrinter writes the per-file lines and the build summary.
type resultPrinter struct {
	env     *Environment
	quiet   bool
	verbose bool
}

// printResult prints one file outcome. Failures always go to stderr;
// everything else is silenced by quiet.
func (p *resultPrinter) printResult(r md2site.FileResult) {
	if r.Failed() {
		fmt.Fprintf(p.env.Stderr, "FAILED %s: %v\n", r.Source, r.Err)
		return
	}
	if p.quiet {
		return
	}

	var line string
	switch r.Kind {
	case md2site.KindConverted:
		line = fmt.Sprintf("Converted %s to HTML.", r.Source)
	case md2site.KindCopied:
		line = fmt.Sprintf("Copied %s to %s.", r.Source, r.Output)
	case md2site.KindSkipped:
		if r.Reason == "empty file" {
			line = fmt.Sprintf("Skipping empty file: %s", r.Source)
		} else {
			line = fmt.Sprintf("Skipping %s: %s", r.Source, r.Reason)
		}
	}

	if p.verbose && r.Kind != md2site.KindSkipped {
		line += fmt.Sprintf(" (%v)", r.Duration.Round(time.Microsecond))
	}
	fmt.Fprintln(p.env.Stdout, line)
}

// printBrokenLinks lists links with no generated target.
func (p *resultPrinter) printBrokenLinks(links []md2site.BrokenLink) {
	if p.quiet {
		return
	}
	for _, l := range links {
		fmt.Fprintf(p.env.Stderr, "BROKEN LINK %s -> %s\n", l.Page, l.Link)
	}
}

// printSummary prints the counts line unless quiet.
func (p *resultPrinter) printSummary(report *md2site.Report, elapsed time.Duration) {
	if p.quiet {
		return
	}

	fmt.Fprintf(p.env.Stdout, "\n%d converted, %d copied, %d skipped, %d failed (%s written)",
		report.Converted, report.Copied, report.Skipped, report.Failed,
		humanize.Bytes(uint64(report.BytesWritten))) // #nosec G115 -- byte counts are never negative
	if p.verbose {
		fmt.Fprintf(p.env.Stdout, " in %v", elapsed.Round(time.Millisecond))
	}
	fmt.Fprintln(p.env.Stdout)
}
