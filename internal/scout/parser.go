package scout

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ExtractLinks walks the document and returns every absolute link found in
// href attributes, in document order, relative URLs resolved against baseURL.
func ExtractLinks(rawHTML, baseURL string) []string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				link := resolveLink(base, a.Val)
				if link != "" && !seen[link] {
					seen[link] = true
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return links
}

func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// IsHotelURL reports whether a link plausibly points at a hotel page. The
// filter is deliberately loose: directory sites structure hotel links in
// wildly different ways, so substring matching is all that generalizes.
func IsHotelURL(link string) bool {
	return strings.Contains(strings.ToLower(link), "hotel")
}
