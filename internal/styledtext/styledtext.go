// Package styledtext turns styled token sequences into terminal escape
// sequences.
//
// A LineCollector receives the tokens for one side of a diff block (old or
// new) and renders them with minimal escapes: an inverse-video toggle is
// emitted only when the inverse state changes and a color code only when the
// active color changes. Structural highlight rules (trailing whitespace,
// embedded tabs, joining highlighted words across a single space) are applied
// per row before emission.
package styledtext

import (
	"unicode"
	"unicode/utf8"

	"github.com/skagerrak/riffle/internal/ansi"
)

// Style is the closed set of token styles.
type Style int

const (
	StyleOld Style = iota
	StyleOldInverse
	StyleNew
	StyleNewInverse
	StyleError
)

// IsInverse reports whether s renders in inverse video.
func (s Style) IsInverse() bool {
	switch s {
	case StyleOldInverse, StyleNewInverse, StyleError:
		return true
	default:
		return false
	}
}

// Inverted returns the inverse-video variant of s. Already-inverse styles map
// to themselves.
func (s Style) Inverted() Style {
	switch s {
	case StyleOld:
		return StyleOldInverse
	case StyleNew:
		return StyleNewInverse
	default:
		return s
	}
}

// Color returns the escape sequence for s's color.
func (s Style) Color() string {
	switch s {
	case StyleOld, StyleOldInverse:
		return ansi.Old
	case StyleNew, StyleNewInverse:
		return ansi.New
	case StyleError:
		return ansi.Error
	default:
		panic("styledtext: unknown style")
	}
}

// Token is a piece of text with a style. Text is never empty and never spans
// a newline.
type Token struct {
	Text  string
	Style Style
}

// IsWhitespace reports whether the token is a single whitespace character.
// Multi-character tokens are words and never whitespace.
func (t Token) IsWhitespace() bool {
	r, size := utf8.DecodeRuneInString(t.Text)
	if size != len(t.Text) {
		return false
	}
	return unicode.IsSpace(r)
}

// IsWord reports whether the token is a word: multiple characters, or a
// single alphanumeric one.
func (t Token) IsWord() bool {
	r, size := utf8.DecodeRuneInString(t.Text)
	if size != len(t.Text) {
		return true
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
