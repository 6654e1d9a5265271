package intent

import (
	"strings"
	"unicode"
)

// negationCues are checked in order; the first cue that negates wins
var negationCues = [][]string{
	{"not"},
	{"no"},
	{"don't", "want"},
	{"avoid"},
	{"nothing"},
}

// IsNegated reports whether phrase is negated somewhere in text.
//
// A phrase counts as negated when a cue is followed by the phrase, either
// directly or after one filler token ("not horror", "no cheesy romance").
// Punctuation breaks adjacency ("no, horror is great" is not a negation), but
// the scan covers the whole text rather than the clause the phrase was found
// in, so "no horror now, later horror is fine" still negates horror.
func IsNegated(text, phrase string) bool {
	tokens := tokenize(strings.ToLower(text))
	target := tokenize(strings.ToLower(phrase))
	if len(target) == 0 {
		return false
	}

	for _, cue := range negationCues {
		for i := range tokens {
			if !hasTokensAt(tokens, i, cue) {
				continue
			}
			next := i + len(cue)
			// Filler glued to the phrase ("not superhorror") or no filler at all
			if phraseAt(tokens, next, target, true) {
				return true
			}
			// One separate filler word
			if next < len(tokens) && isWord(tokens[next]) && phraseAt(tokens, next+1, target, false) {
				return true
			}
		}
	}

	return false
}

// tokenize splits text into word tokens, keeping apostrophes and hyphens
// so "don't" and "sci-fi" survive as single tokens. Every other non-space
// rune becomes a token of its own, so a cue cannot reach across a comma.
func tokenize(text string) []string {
	var tokens []string
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
		if !unicode.IsSpace(r) {
			tokens = append(tokens, string(r))
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' || r == '_'
}

func isWord(token string) bool {
	for _, r := range token {
		return isWordRune(r)
	}
	return false
}

func hasTokensAt(tokens []string, at int, want []string) bool {
	if at+len(want) > len(tokens) {
		return false
	}
	for k, w := range want {
		if tokens[at+k] != w {
			return false
		}
	}
	return true
}

// phraseAt checks whether target starts at tokens[at]. The last target token
// may continue into a longer word ("horror" in "horrors"); when glued is set
// the first target token may also be preceded by other word characters.
func phraseAt(tokens []string, at int, target []string, glued bool) bool {
	n := len(target)
	if at < 0 || at+n > len(tokens) {
		return false
	}

	if n == 1 {
		if glued {
			return strings.Contains(tokens[at], target[0])
		}
		return strings.HasPrefix(tokens[at], target[0])
	}

	first := tokens[at]
	if glued {
		if !strings.HasSuffix(first, target[0]) {
			return false
		}
	} else if first != target[0] {
		return false
	}

	for k := 1; k < n-1; k++ {
		if tokens[at+k] != target[k] {
			return false
		}
	}

	return strings.HasPrefix(tokens[at+n-1], target[n-1])
}
