package offer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeHTML reports whether text appears to be an HTML document or fragment
func LooksLikeHTML(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(t, "<!doctype html") || strings.HasPrefix(t, "<html") {
		return true
	}
	return strings.Contains(t, "<body") || strings.Contains(t, "<p>") || strings.Contains(t, "<table") || strings.Contains(t, "<div")
}

// ExtractText reduces an HTML offer letter to plain text. Block elements and
// table cells are separated so that "Base Salary" and its amount in adjacent
// cells stay on one line.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, head").Remove()
	doc.Find("td, th").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, tr, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}
