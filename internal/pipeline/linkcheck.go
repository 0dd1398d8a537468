package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LocalLinks returns the site-relative targets referenced by a rendered
// fragment: a[href] and img[src] values that are neither URLs, anchors nor
// absolute paths. Queries and fragments are dropped, percent-escapes
// decoded. Order follows the document; duplicates are removed.
func LocalLinks(fragment string) ([]string, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}

	c := &linkCollector{seen: make(map[string]bool)}
	for _, n := range nodes {
		c.walk(n)
	}
	return c.links, nil
}

type linkCollector struct {
	links []string
	seen  map[string]bool
}

func (c *linkCollector) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.A:
			c.add(attr(n, "href"))
		case atom.Img:
			c.add(attr(n, "src"))
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

func (c *linkCollector) add(ref string) {
	if !isRelativePath(ref) {
		return
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if decoded, err := url.PathUnescape(ref); err == nil {
		ref = decoded
	}
	if ref == "" || c.seen[ref] {
		return
	}
	c.seen[ref] = true
	c.links = append(c.links, ref)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// isRelativePath reports whether ref points into the site tree.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") {
		return false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return false
	}
	return true
}

// ResolveLink joins a local link found in the page at pagePath (slash
// separated, relative to the output root) into a root-relative path.
// A trailing slash means the directory's index.html. ok is false when the
// link climbs above the root.
func ResolveLink(pagePath, link string) (target string, ok bool) {
	dirLink := strings.HasSuffix(link, "/")
	target = path.Join(path.Dir(pagePath), link)
	if target == ".." || strings.HasPrefix(target, "../") {
		return "", false
	}
	if dirLink || target == "." {
		target = path.Join(target, "index.html")
	}
	return target, true
}
