// Package textutil holds the shared text primitives used by ranking,
// synthesis and evidence matching. All comparisons in those stages go
// through the same normalization so their overlap counts agree.
package textutil

import (
	"regexp"
	"strings"
)

var (
	wordRe    = regexp.MustCompile(`\w+`)
	nonWordRe = regexp.MustCompile(`[^\w\s]`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// stopWords are dropped during query tokenization.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"what": {}, "when": {}, "where": {}, "why": {}, "how": {}, "which": {},
}

// Tokens lowercases s and returns its word tokens, dropping stop words
// and anything shorter than three characters.
func Tokens(s string) []string {
	raw := wordRe.FindAllString(strings.ToLower(s), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) <= 2 {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Normalize lowercases s, turns punctuation into spaces and collapses
// whitespace runs. Applying it twice yields the same result.
func Normalize(s string) string {
	n := nonWordRe.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(n, " "))
}

// WordSet returns the set of normalized words in s.
func WordSet(s string) map[string]struct{} {
	words := strings.Fields(Normalize(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Overlap counts the words two sets share.
func Overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// SplitSentences splits text at .!? runs followed by whitespace,
// keeping the terminator with its sentence. Fragments of ten
// characters or fewer and trailing "Sources" blocks are discarded.
func SplitSentences(text string) []string {
	var sentences []string
	keep := func(s string) {
		s = strings.TrimSpace(s)
		if len(s) > 10 && !strings.HasPrefix(s, "Sources") {
			sentences = append(sentences, s)
		}
	}

	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		if j >= len(text) || !isSpace(text[j]) {
			continue
		}
		keep(text[start:j])
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(text) {
		keep(text[start:])
	}
	return sentences
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
