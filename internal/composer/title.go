package composer

import (
	"strings"
	"unicode/utf8"
)

const (
	maxTitleChars    = 100
	maxTitleSubject  = 80
	titlePlaceholder = "{title}"
)

// stripLabel drops a leading "Label: " prefix such as "LIVE: " or "Watch: ".
func stripLabel(title string) string {
	idx := strings.Index(title, ": ")
	if idx < 0 {
		return title
	}
	if rest := strings.TrimSpace(title[idx+2:]); rest != "" {
		return rest
	}
	return title
}

// applyTitleTemplate interpolates the subject and caps the result at 100 chars.
func applyTitleTemplate(tmpl, original string) string {
	subject := truncate(strings.TrimSpace(stripLabel(original)), maxTitleSubject, "")
	if !strings.Contains(tmpl, titlePlaceholder) {
		tmpl = tmpl + " " + titlePlaceholder
	}
	title := strings.ReplaceAll(tmpl, titlePlaceholder, subject)
	return truncate(strings.TrimSpace(title), maxTitleChars, "...")
}

// truncate caps s at limit runes; when cut, the ellipsis counts toward the limit.
func truncate(s string, limit int, ellipsis string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(ellipsis)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:keep]), " ") + ellipsis
}

// excerptOf cuts text at a word boundary so the result, ellipsis included,
// fits in limit runes.
func excerptOf(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)[:limit-3]
	cut := string(runes)
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:-") + "..."
}
