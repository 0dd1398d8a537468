// Package pipeline turns one Markdown document into one HTML page.
//
// The stages run in order:
//   - preprocessing (byte order mark, line endings) and front matter split
//   - goldmark parsing and rendering through SiteRenderer, which styles
//     headings, paragraphs, lists, links and chroma-highlighted code
//   - the page template, which wraps the fragment with site metadata
//
// LocalLinks and ResolveLink let the site builder check internal links
// after the fact. Nothing here touches the filesystem.
package pipeline
