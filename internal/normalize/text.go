package normalize

import (
	"regexp"
	"strings"
)

var (
	specialCharRe = regexp.MustCompile(`[^\w &.-]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Clean strips statement noise from a description: every character except
// word characters, space, '&', '.', and '-' is removed, runs of whitespace
// collapse to single spaces, and the result is trimmed. Clean is idempotent.
func Clean(text string) string {
	s := specialCharRe.ReplaceAllString(text, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Payee takes a best-effort payee from a cleaned description: the first
// three whitespace-separated words, or fewer when the description is
// shorter. An empty description yields an empty payee.
func Payee(cleanedDescription string) string {
	if cleanedDescription == "" {
		return ""
	}
	words := strings.Fields(cleanedDescription)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
