package notify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const ellipsis = "..."

var priorityPrefix = regexp.MustCompile(`^\s*\d*\.\s*`)

// Truncate shortens text to maxLength runes, ending with "..." when cut.
func Truncate(text string, maxLength int) string {
	if maxLength < len(ellipsis) || utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength-len(ellipsis)]) + ellipsis
}

// CapitalizeFirst upper-cases the first rune of s.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// StripPriorityPrefix removes an ordering prefix like "1. " from a priority name.
func StripPriorityPrefix(name string) string {
	return priorityPrefix.ReplaceAllString(name, "")
}

// issueLink renders a markdown link to the issue.
func issueLink(key, url string) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(key)
	b.WriteString("](")
	b.WriteString(url)
	b.WriteString(")")
	return b.String()
}
