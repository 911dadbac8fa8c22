package refine

import (
	"strings"

	"github.com/skagerrak/riffle/internal/ansi"
	"github.com/skagerrak/riffle/internal/tokenize"
)

// Filenames renders a "--- oldName" / "+++ newName" filename header pair,
// highlighting what changed between the two names. This shares the tokenizer
// and edit script with Refine but not its structural whitespace/tab/word-join
// passes: a filename header is a single line of metadata, not code.
//
// Post-processing:
//   - the usual a/ and b/ prefixes git puts on the two sides always differ,
//     so a changed prefix is not highlighted;
//   - some diff producers append "\t<timestamp>" to the names; everything
//     from the first tab on renders faint.
func Filenames(oldName, newName string) (oldLine, newLine string) {
	script, ok := editScript(tokenize.Tokenize(oldName), tokenize.Tokenize(newName))
	if !ok {
		return ansi.Bold + "--- " + oldName + ansi.Normal,
			ansi.Bold + "+++ " + newName + ansi.Normal
	}

	var oldTokens, newTokens []filenameToken
	for _, e := range script {
		switch e.kind {
		case editCopy:
			oldTokens = append(oldTokens, filenameToken{text: e.token})
			newTokens = append(newTokens, filenameToken{text: e.token})
		case editRemove:
			oldTokens = append(oldTokens, filenameToken{text: e.token, inverse: true})
		case editInsert:
			newTokens = append(newTokens, filenameToken{text: e.token, inverse: true})
		}
	}

	unhighlightDiffPrefix(oldTokens, "a")
	unhighlightDiffPrefix(newTokens, "b")
	lowlightTimestamp(oldTokens)
	lowlightTimestamp(newTokens)

	return renderFilenameRow("--- ", oldTokens), renderFilenameRow("+++ ", newTokens)
}

type filenameToken struct {
	text    string
	inverse bool
	faint   bool
}

// unhighlightDiffPrefix drops the highlight from a leading "a/" or "b/". The
// two sides of a git header differ in that prefix by construction, so
// highlighting it carries no information.
func unhighlightDiffPrefix(tokens []filenameToken, letter string) {
	if len(tokens) < 2 {
		return
	}
	if tokens[0].text != letter || tokens[1].text != "/" {
		return
	}
	tokens[0].inverse = false
	tokens[1].inverse = false
}

// lowlightTimestamp renders everything from the first tab on as faint,
// unhighlighted text.
func lowlightTimestamp(tokens []filenameToken) {
	seenTab := false
	for i := range tokens {
		if tokens[i].text == "\t" {
			seenTab = true
		}
		if seenTab {
			tokens[i].inverse = false
			tokens[i].faint = true
		}
	}
}

func renderFilenameRow(prefix string, tokens []filenameToken) string {
	var b strings.Builder
	b.WriteString(ansi.Bold)
	b.WriteString(prefix)

	inverse := false
	faint := false
	for _, token := range tokens {
		if token.inverse != inverse {
			if token.inverse {
				b.WriteString(ansi.InverseVideo)
			} else {
				b.WriteString(ansi.NotInverseVideo)
			}
			inverse = token.inverse
		}
		if token.faint && !faint {
			b.WriteString(ansi.Faint)
			faint = true
		}
		b.WriteString(token.text)
	}

	b.WriteString(ansi.Normal)
	return b.String()
}
