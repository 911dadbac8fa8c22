package refine

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

type editKind int

const (
	editCopy editKind = iota
	editInsert
	editRemove
)

// edit is one step of a token-level edit script. A token is either copied to
// both sides, inserted on the new side, or removed from the old side; there
// is no nested "change" operation.
type edit struct {
	kind  editKind
	token string
}

// editScript computes a token-level edit script from oldTokens to newTokens.
//
// Tokens are interned as runes so diffmatchpatch can diff them as text, the
// same trick its DiffLinesToRunes applies to lines. ok is false in the
// unlikely case the blocks hold more distinct tokens than there are usable
// rune values; callers should then fall back to unrefined formatting.
func editScript(oldTokens, newTokens []string) (script []edit, ok bool) {
	indexes := make(map[string]rune, len(oldTokens)+len(newTokens))
	var table []string

	intern := func(tokens []string) ([]rune, bool) {
		runes := make([]rune, 0, len(tokens))
		for _, token := range tokens {
			r, seen := indexes[token]
			if !seen {
				next := rune(len(table))
				if next >= 0xD800 {
					// Skip the surrogate range; beyond that, give up.
					next += 0xE000 - 0xD800
					if next > 0x10FFFF {
						return nil, false
					}
				}
				r = next
				indexes[token] = r
				table = append(table, token)
			}
			runes = append(runes, r)
		}
		return runes, true
	}

	lookup := func(r rune) string {
		if r >= 0xE000 {
			r -= 0xE000 - 0xD800
		}
		return table[r]
	}

	oldRunes, ok := intern(oldTokens)
	if !ok {
		return nil, false
	}
	newRunes, ok := intern(newTokens)
	if !ok {
		return nil, false
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	script = make([]edit, 0, len(oldTokens)+len(newTokens))
	for _, d := range diffs {
		var kind editKind
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			kind = editCopy
		case diffmatchpatch.DiffInsert:
			kind = editInsert
		case diffmatchpatch.DiffDelete:
			kind = editRemove
		}
		for _, r := range d.Text {
			script = append(script, edit{kind: kind, token: lookup(r)})
		}
	}
	return script, true
}
