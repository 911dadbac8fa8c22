// Package uni wraps text segmentation and terminal width calculation.
package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Non-East-Asian locale. Diff output has no locale information, so this is a
// fixed choice rather than an option.
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}()

// TextWidth returns the text width of str for monospace fonts in terminals.
func TextWidth(str string) int {
	return cond.StringWidth(str)
}

// Graphemes iterates over the grapheme clusters of a string.
type Graphemes struct {
	iter graphemes.Iterator[string]
}

// NewGraphemes returns a grapheme cluster iterator over str.
func NewGraphemes(str string) *Graphemes {
	return &Graphemes{iter: graphemes.FromString(str)}
}

func (g *Graphemes) Next() bool {
	return g.iter.Next()
}

// Value returns the current grapheme cluster.
func (g *Graphemes) Value() string {
	return g.iter.Value()
}

// Start returns the byte position of the current cluster in the original string.
func (g *Graphemes) Start() int {
	return g.iter.Start()
}

// End returns the byte position just after the current cluster.
func (g *Graphemes) End() int {
	return g.iter.End()
}
