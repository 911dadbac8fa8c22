package styledtext

// The functions in this file restyle one row of tokens (a row never contains
// newline tokens). They operate on the row slice they are handed.

// HighlightTrailingWhitespace restyles the row's trailing whitespace tokens
// to StyleError, scanning backwards from the end and stopping at the first
// non-whitespace token.
func HighlightTrailingWhitespace(row []Token) {
	for i := len(row) - 1; i >= 0; i-- {
		if !row[i].IsWhitespace() {
			return
		}
		row[i].Style = StyleError
	}
}

// HighlightNonleadingTab restyles to StyleError every tab token that comes
// after the row's leading run of tabs. Leading tabs are indentation and stay
// as they are.
func HighlightNonleadingTab(row []Token) {
	i := 0
	for i < len(row) && row[i].Text == "\t" {
		i++
	}

	for ; i < len(row); i++ {
		if row[i].Text == "\t" {
			row[i].Style = StyleError
		}
	}
}

type foundState int

const (
	foundNothing foundState = iota
	foundHighlightedWord
	foundWordSpace
)

// HighlightSpaceBetweenWords promotes a single whitespace token between two
// inverse-styled words to the inverse style, so that "Monkey Dance" with both
// words highlighted reads as one continuous highlight.
func HighlightSpaceBetweenWords(row []Token) {
	state := foundNothing
	for i := range row {
		token := &row[i]
		highlightedWord := token.Style.IsInverse() && token.IsWord()

		switch state {
		case foundNothing:
			if highlightedWord {
				// Found "Monkey"
				state = foundHighlightedWord
			}

		case foundHighlightedWord:
			switch {
			case token.IsWhitespace():
				// Found "Monkey " (note the trailing space)
				state = foundWordSpace
			case highlightedWord:
				state = foundHighlightedWord
			default:
				state = foundNothing
			}

		case foundWordSpace:
			if highlightedWord {
				// Found "Monkey Dance"; pull the space in between into the
				// highlight.
				row[i-1].Style = row[i-1].Style.Inverted()
				state = foundHighlightedWord
			} else {
				state = foundNothing
			}
		}
	}
}
