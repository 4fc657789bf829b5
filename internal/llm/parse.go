package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>\)\]]+`)

// ParseURLList pulls an ordered list of URLs out of a model reply. Models
// answer in whatever shape they feel like, so several are tolerated:
//
//   - a JSON object mapping hotel name -> URL
//   - a JSON object wrapping an array under "hotels"
//   - a JSON array of {"name": ..., "url": ...} objects or bare strings
//   - free text with bullets, numbering, or surrounding prose
//
// Duplicates are dropped, first occurrence wins.
func ParseURLList(text string) []string {
	text = strings.TrimSpace(text)
	text = stripCodeFence(text)

	if urls := parseJSONList(text); len(urls) > 0 {
		return dedupe(urls)
	}

	// Fall back to scanning the raw text for URLs line by line, which also
	// handles bullet points and numbered lists.
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		urls = append(urls, urlPattern.FindAllString(line, -1)...)
	}
	return dedupe(urls)
}

func parseJSONList(text string) []string {
	var urls []string

	// Object form: name -> url, or a wrapper around an array.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		if raw, ok := obj["hotels"]; ok {
			return parseJSONArray(raw)
		}
		for _, raw := range obj {
			var s string
			if json.Unmarshal(raw, &s) == nil && looksLikeURL(s) {
				urls = append(urls, s)
			}
		}
		return urls
	}

	// Array form.
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err == nil {
		return parseJSONArray(raw)
	}
	return nil
}

func parseJSONArray(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var urls []string
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			if looksLikeURL(s) {
				urls = append(urls, s)
			}
			continue
		}
		var entry struct {
			URL string `json:"url"`
		}
		if json.Unmarshal(item, &entry) == nil && looksLikeURL(entry.URL) {
			urls = append(urls, entry.URL)
		}
	}
	return urls
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		u = strings.TrimRight(u, ".,;")
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
