// Package names canonicalizes free-text player names into stable join keys.
//
// The box-score feed, the draft board, and the roster sheet are authored
// independently and may render the same person differently ("D.J. Smith Jr."
// vs "DJ Smith"). The normalized key is the only linkage between them. Two
// distinct people that normalize to the same key merge silently — that is a
// deliberate, lossy join strategy, not an error condition.
package names

import (
	"regexp"
	"strings"
)

var (
	nonWord     = regexp.MustCompile(`[^\w\s]`)
	suffixToken = regexp.MustCompile(`\b(jr|sr|ii|iii|iv)\b`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases, strips punctuation, drops standalone suffix tokens
// (jr, sr, ii, iii, iv as whole words only), and collapses whitespace.
// Total and pure: any input yields a key, possibly the empty string.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = nonWord.ReplaceAllString(s, " ")
	s = suffixToken.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
