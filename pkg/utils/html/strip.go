// ABOUTME: HTML utilities for stripping tags and decoding entities
// ABOUTME: Used to clean search result titles and snippets before they reach an LLM prompt

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes tags, drops script and style content, decodes entities
// and collapses whitespace. Plain text passes through unchanged apart from
// whitespace normalisation.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CollapseWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CollapseWhitespace(s)
	}

	doc.Find("script, style, noscript").Remove()

	return CollapseWhitespace(doc.Text())
}

// CollapseWhitespace trims the string and folds runs of whitespace into one space
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
