package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	style           string
	strictLanguages bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	assetPath string
}

// buildFlags holds all flags for a site build.
type buildFlags struct {
	common      commonFlags
	highlight   highlightFlags
	assets      assetFlags
	noLinkCheck bool
	version     bool
	help        bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging and per-file timings")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "code-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.strictLanguages, "strict-languages", false, "fail files with unknown code block languages")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with templates/ and styles/ overrides")
}

// parseFlags parses command line flags and returns positional args.
// pflag's own error and usage output is discarded; callers print usage.
func parseFlags(args []string) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("md2site", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &buildFlags{}

	addCommonFlags(fs, &f.common)
	addHighlightFlags(fs, &f.highlight)
	addAssetFlags(fs, &f.assets)
	fs.BoolVar(&f.noLinkCheck, "no-link-check", false, "skip the broken internal link report")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
