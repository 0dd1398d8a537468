package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site [flags] <input-dir> <output-dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a tree of Markdown files into a static HTML site.")
	fmt.Fprintln(w, "Markdown files become pages at the same relative path, every other")
	fmt.Fprintln(w, "file is copied unchanged.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input-dir     Source tree (optional if config has input.dir)")
	fmt.Fprintln(w, "  output-dir    Destination tree (optional if config has output.dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --code-style <name>     Chroma style (default: friendly)")
	fmt.Fprintln(w, "      --strict-languages      Fail files with unknown code block languages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with templates/ and styles/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --no-link-check         Skip the broken internal link report")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Debug logging and per-file timings")
	fmt.Fprintln(w, "      --version               Show version information")
	fmt.Fprintln(w, "  -h, --help                  Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_CONFIG, MD2SITE_INPUT_DIR, MD2SITE_OUTPUT_DIR, MD2SITE_CODE_STYLE,")
	fmt.Fprintln(w, "  MD2SITE_UNKNOWN_LANGUAGE, MD2SITE_ASSET_PATH, MD2SITE_LOG_LEVEL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Priority: flags > environment > config file > defaults.")
}
