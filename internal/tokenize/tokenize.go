// Package tokenize splits text into the smallest independently stylable units.
package tokenize

import (
	"unicode"
	"unicode/utf8"

	"github.com/skagerrak/riffle/internal/uni"
)

// Tokenize splits text into tokens. A token is either a word (a maximal run
// of alphanumeric runes) or a single non-alphanumeric user-perceived
// character: newlines, individual spaces, tabs and punctuation each become
// their own token. No token ever spans a newline.
//
// Concatenating the returned tokens yields text exactly.
//
// The single-character granularity is what later enables highlighting one
// trailing space or one embedded tab. Non-word characters are split on
// grapheme cluster boundaries so that combining sequences and emoji stay
// intact as one token.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/2+1)
	wordStart := -1 // byte offset where the current word run began, -1 when outside a word

	g := uni.NewGraphemes(text)
	for g.Next() {
		cluster := g.Value()
		if isWordCluster(cluster) {
			if wordStart < 0 {
				wordStart = g.Start()
			}
			continue
		}

		if wordStart >= 0 {
			tokens = append(tokens, text[wordStart:g.Start()])
			wordStart = -1
		}
		tokens = append(tokens, cluster)
	}

	if wordStart >= 0 {
		tokens = append(tokens, text[wordStart:])
	}

	return tokens
}

// isWordCluster reports whether cluster is a single alphanumeric rune.
// Multi-rune clusters (combining sequences, emoji) never join word runs.
func isWordCluster(cluster string) bool {
	r, size := utf8.DecodeRuneInString(cluster)
	if size != len(cluster) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
