// Package md2site turns a directory of Markdown files into a static HTML site.
//
// # Quick Start
//
// Build a whole tree:
//
//	conv, err := md2site.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := md2site.NewBuilder(conv).Build(ctx, "pages", "public")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Converted, "pages")
//
// Or convert a single document:
//
//	result, err := conv.Convert(ctx, md2site.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Path:     "hello.html",
//	})
//
// # Conversion Pipeline
//
//  1. Preprocessing (byte order mark, line endings)
//  2. Optional YAML front matter (title, description)
//  3. Markdown to HTML via goldmark, with site classes on headings,
//     paragraphs and lists, chroma highlighting for code blocks and
//     .md to .html link rewriting
//  4. Page template (html/template) with layout and highlighting CSS
//
// # Site Build
//
// Builder mirrors the input tree into the output tree. Markdown files become
// pages at the same relative path with an .html extension, every other file
// is copied byte for byte. A file that fails is recorded in the Report and
// the walk goes on. After the walk, site-relative links in the pages are
// checked against what was written.
//
// # Configuration
//
//	conv, err := md2site.NewConverter(
//	    md2site.WithSite(site),
//	    md2site.WithCodeStyle("monokai"),
//	    md2site.WithUnknownLanguage(md2site.UnknownLanguageError),
//	    md2site.WithAssetPath("/path/to/custom/assets"),
//	)
//
// A custom asset path holds templates/{name}.html and styles/{name}.css.
// Names not found there fall back to the embedded defaults.
//
// # Errors
//
// Errors wrap the sentinels in errors.go and can be matched with errors.Is:
//
//	if errors.Is(err, md2site.ErrUnknownLanguage) {
//	    // a fence tag chroma does not know, under the error policy
//	}
package md2site
