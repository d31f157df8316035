package extract

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Text returns the visible text of rawHTML as a human-readable dump:
// one line per text chunk, leading and trailing whitespace trimmed.
// Script, style, and noscript contents are skipped. Malformed markup
// never fails; extraction degrades to whatever text is recoverable, and
// unparseable input yields an empty string.
func Text(rawHTML []byte) string {
	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}

// Links returns the candidate crawl URLs of rawHTML in document order.
// Every anchor href is resolved against baseURL to absolute form, and
// only URLs whose scheme begins with "http" are kept — this drops
// mailto:, javascript:, tel:, and fragment-only references. Duplicates
// within one page are NOT removed here; deduplication is entirely the
// frontier's job.
func Links(rawHTML []byte, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" {
				if resolved := resolve(base, href); resolved != "" {
					links = append(links, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// resolve turns href into an absolute URL against base, returning ""
// for references that are not crawlable web URLs.
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		// Fragment-only references point back into the current page.
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(u)
	if !strings.HasPrefix(resolved.Scheme, "http") {
		return ""
	}
	return resolved.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
