// Package normalize reduces evidentiary content to plain visible text
// before length checks and pattern matching. Digital communications are
// often exported as HTML; markup must not inflate content length or hide
// actionable strings inside attributes.
package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// LooksLikeHTML reports whether the content appears to carry markup
// worth stripping. Cheap heuristic: a tag-like prefix or common
// structural tags anywhere in the text.
func LooksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">") {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, tag := range []string{"<html", "<body", "<div", "<p>", "<br", "<span", "<table"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

// Content returns the normalized form of evidentiary content: visible
// text with collapsed whitespace. Non-HTML content passes through with
// whitespace collapsed only. Never fails; unparseable markup falls back
// to the raw text.
func Content(content string) string {
	if !LooksLikeHTML(content) {
		return collapseWhitespace(content)
	}
	text, err := VisibleText(content)
	if err != nil || text == "" {
		return collapseWhitespace(content)
	}
	return collapseWhitespace(text)
}

// VisibleText parses HTML and extracts its visible text, skipping
// script, style and other non-content subtrees.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
