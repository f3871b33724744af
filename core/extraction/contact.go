// ABOUTME: Deterministic email and phone pattern matching over extracted answers

package extraction

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// International or national numbers with common separators
	phonePattern = regexp.MustCompile(`\+?\(?\d{1,4}\)?(?:[\s.\-]?\(?\d{1,4}\)?){2,5}\d`)
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// FindEmails returns distinct email addresses in order of appearance
func FindEmails(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range emailPattern.FindAllString(text, -1) {
		m = strings.TrimRight(m, ".")
		key := strings.ToLower(m)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// FindPhones returns distinct phone numbers in order of appearance.
// Matches with fewer than 7 or more than 15 digits are ignored, which
// keeps years and ordinary numbers out.
func FindPhones(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range phonePattern.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		digits := digitsOnly(m)
		if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
			continue
		}
		if _, ok := seen[digits]; ok {
			continue
		}
		seen[digits] = struct{}{}
		out = append(out, m)
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
