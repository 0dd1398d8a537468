package pipeline

import "strings"

// RewriteLinkURL maps a Markdown link target to the generated page.
//
//   - "notes.md" -> "notes.html"
//   - "about"    -> "about.html"
//
// Absolute URLs, fragments, root-relative paths and anything else that has
// a dot (images, "style.css", "v1.2") are left alone.
func RewriteLinkURL(url string) string {
	if strings.HasSuffix(url, ".md") {
		return strings.TrimSuffix(url, ".md") + ".html"
	}
	if isExtensionlessPage(url) {
		return url + ".html"
	}
	return url
}

func isExtensionlessPage(url string) bool {
	for _, prefix := range []string{"http://", "https://", "#", "/"} {
		if strings.HasPrefix(url, prefix) {
			return false
		}
	}
	return !strings.Contains(url, ".")
}
