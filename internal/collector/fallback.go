package collector

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Fallback field recovery for when structured extraction returns a page but
// leaves some fields empty.

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)address:\s*([^,\n]+(?:,\s*[^,\n]+){1,3})`),
	regexp.MustCompile(`(?i)location:\s*([^,\n]+(?:,\s*[^,\n]+){1,3})`),
	regexp.MustCompile(`(?i)(?:hotel|property) address[:\s]+([^,\n]+(?:,\s*[^,\n]+){1,3})`),
}

var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)price:\s*(\$[\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)(\$[\d,]+(?:\.\d{2})?)\s*per night`),
	regexp.MustCompile(`(?i)(?:rate|room rate)[:\s]+(\$[\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`((?:\$|€|£|₹|¥)[\d,]+(?:\.\d{2})?)`),
}

func findAddress(content string) string {
	for _, pattern := range addressPatterns {
		if m := pattern.FindStringSubmatch(content); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func findPrice(content string) string {
	for _, pattern := range pricePatterns {
		if m := pattern.FindStringSubmatch(content); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// pageText returns plain text for the fallback regexes. Extraction services
// usually hand back markdown, but some responses carry raw HTML; those get
// walked node by node with scripts and styles skipped.
func pageText(content string) string {
	if !looksLikeHTML(content) {
		return content
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			parent := n.Parent
			if parent != nil && parent.Data != "script" && parent.Data != "style" {
				text := strings.TrimSpace(n.Data)
				if len(text) > 0 {
					b.WriteString(text + " ")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return b.String()
}

func looksLikeHTML(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") || strings.Contains(lower, "</div>")
}

// titleFromURL reconstructs a readable hotel name from the URL path, e.g.
// https://www.booking.com/hotel/us/the-plaza.html -> "The Plaza".
func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if idx := strings.Index(last, "."); idx >= 0 {
		last = last[:idx]
	}
	last = strings.NewReplacer("-", " ", "_", " ").Replace(last)

	words := strings.Fields(last)
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
