// Package refine renders the old/new halves of a diff block as ANSI-escaped
// lines, highlighting the word-level differences between them.
package refine

import (
	"strings"

	"github.com/skagerrak/riffle/internal/ansi"
	"github.com/skagerrak/riffle/internal/simplelogger"
	"github.com/skagerrak/riffle/internal/styledtext"
	"github.com/skagerrak/riffle/internal/tokenize"
)

// newlineGlyph makes a highlighted newline visible; without it the highlight
// would sit on an invisible character.
const newlineGlyph = "⏎"

// Refine renders oldText and newText, each a concatenation of \n-terminated
// lines from a removed/added run (the final line may lack its \n if the file
// did). It returns fully rendered, ANSI-escaped lines for each side.
//
// If either side is empty there is nothing to compare and both sides get
// flat coloring. Otherwise both sides are tokenized, a token-level edit
// script is computed, and the changed tokens are rendered in inverse video --
// unless a changed run spans too many lines for word-level highlighting to be
// legible, in which case the run degrades to flat coloring (see drain).
//
// A side whose text does not end in a newline gets a synthesized dim
// "no newline at end of file" line, worded like the marker captured in
// markers if any.
func Refine(oldText, newText string, markers *MarkerStore) (oldLines, newLines []string) {
	if oldText == "" || newText == "" {
		return simpleFormat(oldText, newText, markers)
	}

	script, ok := editScript(tokenize.Tokenize(oldText), tokenize.Tokenize(newText))
	if !ok {
		return simpleFormat(oldText, newText, markers)
	}

	oldCollector := styledtext.NewLineCollector(styledtext.Token{Text: "-", Style: styledtext.StyleOld})
	newCollector := styledtext.NewLineCollector(styledtext.Token{Text: "+", Style: styledtext.StyleNew})

	removes := pendingRun{collector: oldCollector, base: styledtext.StyleOld}
	inserts := pendingRun{collector: newCollector, base: styledtext.StyleNew}

	// atBoundary: the previous token pushed to that side was a newline, or
	// nothing was pushed yet.
	removes.atBoundary = true
	inserts.atBoundary = true

	drainBoth := func(followingToken string, atEnd bool) {
		// A run touching two or more line boundaries reads better as a flat
		// colored block, and if either side's run is that big, keeping the
		// other side's highlight would look asymmetric. Suppress both.
		suppress := removes.tooWide(followingToken, atEnd) || inserts.tooWide(followingToken, atEnd)
		removes.drain(suppress)
		inserts.drain(suppress)
	}

	for _, e := range script {
		switch e.kind {
		case editCopy:
			drainBoth(e.token, false)
			oldCollector.Push(styledtext.Token{Text: e.token, Style: styledtext.StyleOld})
			newCollector.Push(styledtext.Token{Text: e.token, Style: styledtext.StyleNew})
			removes.atBoundary = e.token == "\n"
			inserts.atBoundary = e.token == "\n"
		case editRemove:
			removes.push(e.token)
		case editInsert:
			inserts.push(e.token)
		}
	}
	drainBoth("", true)

	oldRendered := oldCollector.Render()
	newRendered := newCollector.Render()
	simplelogger.Log("refine: old %d bytes (%d cells highlighted), new %d bytes (%d cells highlighted)",
		oldCollector.Bytes(), oldCollector.HighlightedCells(),
		newCollector.Bytes(), newCollector.HighlightedCells())

	oldLines = appendNoEOFNewline(splitLines(oldRendered), oldText, markers)
	newLines = appendNoEOFNewline(splitLines(newRendered), newText, markers)
	return oldLines, newLines
}

// Format is Refine for callers that want the whole block as one string, old
// lines first, each line \n-terminated.
func Format(oldText, newText string, markers *MarkerStore) string {
	oldLines, newLines := Refine(oldText, newText, markers)

	var b strings.Builder
	for _, line := range oldLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, line := range newLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// pendingRun queues a maximal run of consecutive removed (or inserted) tokens
// until the next copied token decides whether the run keeps its inverse
// highlight.
type pendingRun struct {
	collector *styledtext.LineCollector
	base      styledtext.Style

	tokens     []string
	newlines   int  // line boundaries touched so far: leading boundary plus internal newlines
	atBoundary bool // the last token pushed to this side was a newline (or nothing was)
}

func (p *pendingRun) push(token string) {
	if len(p.tokens) == 0 && p.atBoundary {
		p.newlines++
	}
	if token == "\n" {
		p.newlines++
	}
	p.tokens = append(p.tokens, token)
	p.atBoundary = token == "\n"
}

// tooWide reports whether the queued run touches at least two line
// boundaries, counting the token that will follow it (or end of text).
func (p *pendingRun) tooWide(followingToken string, atEnd bool) bool {
	if len(p.tokens) == 0 {
		return false
	}
	touched := p.newlines
	if atEnd || followingToken == "\n" {
		touched++
	}
	return touched >= 2
}

// drain flushes the queued run into the collector. Suppressed runs render in
// the base style; otherwise tokens go inverse, with newlines made visible by
// a glyph and excluded from the inverse span (the renderer re-raises the
// highlight on the run's next line).
func (p *pendingRun) drain(suppress bool) {
	for _, token := range p.tokens {
		if suppress {
			p.collector.Push(styledtext.Token{Text: token, Style: p.base})
			continue
		}
		if token == "\n" {
			p.collector.Push(styledtext.Token{Text: newlineGlyph, Style: p.base.Inverted()})
			p.collector.Push(styledtext.Token{Text: token, Style: p.base})
			continue
		}
		p.collector.Push(styledtext.Token{Text: token, Style: p.base.Inverted()})
	}
	p.tokens = p.tokens[:0]
	p.newlines = 0
}

// simpleFormat renders both sides with flat base coloring and no intra-line
// highlighting.
func simpleFormat(oldText, newText string, markers *MarkerStore) (oldLines, newLines []string) {
	for _, line := range splitLines(oldText) {
		oldLines = append(oldLines, ansi.Old+"-"+line+ansi.Normal)
	}
	oldLines = appendNoEOFNewline(oldLines, oldText, markers)

	for _, line := range splitLines(newText) {
		newLines = append(newLines, ansi.New+"+"+line+ansi.Normal)
	}
	newLines = appendNoEOFNewline(newLines, newText, markers)

	return oldLines, newLines
}

// appendNoEOFNewline appends a dim marker line when text is non-empty and
// does not end in a newline.
func appendNoEOFNewline(lines []string, text string, markers *MarkerStore) []string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return lines
	}
	marker := ansi.NoEOFNewlineMarker
	if markers != nil {
		if captured, ok := markers.Current(); ok {
			marker = captured
		}
	}
	return append(lines, ansi.NoEOFNewlineColor+marker+ansi.Normal)
}

// splitLines splits text into lines without their trailing newlines. Unlike
// strings.Split, no empty tail element appears when text ends in \n.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
