// ABOUTME: Query template domain model holding exactly one entity placeholder
// ABOUTME: Normalises LLM output so every rendered query names the entity once

package domain

import (
	"errors"
	"regexp"
	"strings"
)

// EntityPlaceholder is the canonical substitution token
const EntityPlaceholder = "{entity}"

// ErrEmptyTemplate is returned when no usable query text remains
var ErrEmptyTemplate = errors.New("query template is empty")

var placeholderPattern = regexp.MustCompile(`\{+[^{}]*\}+`)

// QueryTemplate is an immutable search query with one entity placeholder
type QueryTemplate struct {
	text string
}

// NewQueryTemplate builds a template from raw text.
// Any {token} or {{token}} is treated as the placeholder; only the first one survives.
// When no placeholder is present one is appended.
func NewQueryTemplate(raw string) (QueryTemplate, error) {
	text := strings.TrimSpace(raw)

	seen := false
	text = placeholderPattern.ReplaceAllStringFunc(text, func(string) string {
		if seen {
			return ""
		}
		seen = true
		return EntityPlaceholder
	})
	text = strings.Join(strings.Fields(text), " ")

	if strings.TrimSpace(strings.Replace(text, EntityPlaceholder, "", 1)) == "" {
		return QueryTemplate{}, ErrEmptyTemplate
	}
	if !seen {
		text = text + " " + EntityPlaceholder
	}

	return QueryTemplate{text: text}, nil
}

// String returns the template text including the placeholder
func (t QueryTemplate) String() string {
	return t.text
}

// Render substitutes the entity into the template
func (t QueryTemplate) Render(entity string) string {
	return strings.Replace(t.text, EntityPlaceholder, entity, 1)
}
