package styledtext

import (
	"strings"

	"github.com/skagerrak/riffle/internal/ansi"
	"github.com/skagerrak/riffle/internal/uni"
)

// LineCollector accumulates the styled tokens for one side of a diff block
// and renders them as ANSI-escaped text.
//
// Each collector is consumed exactly once: Push tokens, call Render, then
// read the statistics. Rendering twice is an internal error and panics.
type LineCollector struct {
	linePrefix Token // "-" styled old, or "+" styled new
	tokens     []Token

	bytes            int
	highlightedBytes int
	highlightedCells int

	rendered bool
}

// NewLineCollector returns a collector whose rows are prefixed with
// linePrefix. The prefix's style establishes each row's initial inverse and
// color state.
func NewLineCollector(linePrefix Token) *LineCollector {
	return &LineCollector{linePrefix: linePrefix}
}

// Push appends a token.
func (c *LineCollector) Push(token Token) {
	c.tokens = append(c.tokens, token)
}

// Render renders all pushed tokens, one prefixed row per newline token.
// It may only be called once per collector.
func (c *LineCollector) Render() string {
	if c.rendered {
		panic("styledtext: LineCollector rendered twice")
	}
	c.rendered = true

	var rendered strings.Builder
	var row []Token

	tokens := c.tokens
	c.tokens = nil
	for _, token := range tokens {
		c.bytes += len(token.Text)
		if token.Style.IsInverse() {
			c.highlightedBytes += len(token.Text)
			c.highlightedCells += uni.TextWidth(token.Text)
		}

		if token.Text == "\n" {
			rendered.WriteString(c.renderRow(row))
			rendered.WriteByte('\n')
			row = row[:0]
			continue
		}

		row = append(row, token)
	}

	if len(row) > 0 {
		rendered.WriteString(c.renderRow(row))
	}

	return rendered.String()
}

// renderRow renders one row: structural highlight passes, then token text
// with minimal escape changes, then a full reset.
func (c *LineCollector) renderRow(row []Token) string {
	if len(row) == 0 {
		return ""
	}

	if c.linePrefix.Style == StyleNew {
		// Only added lines get the whitespace damage callouts.
		HighlightTrailingWhitespace(row)
		HighlightNonleadingTab(row)
	}
	HighlightSpaceBetweenWords(row)

	var rendered strings.Builder

	// The prefix establishes the row's initial inverse flag and color.
	isInverse := c.linePrefix.Style.IsInverse()
	if isInverse {
		rendered.WriteString(ansi.InverseVideo)
	}
	color := c.linePrefix.Style.Color()
	rendered.WriteString(color)
	rendered.WriteString(c.linePrefix.Text)

	for _, token := range row {
		if token.Style.IsInverse() != isInverse {
			if token.Style.IsInverse() {
				rendered.WriteString(ansi.InverseVideo)
			} else {
				rendered.WriteString(ansi.NotInverseVideo)
			}
			isInverse = token.Style.IsInverse()
		}

		if token.Style.Color() != color {
			color = token.Style.Color()
			rendered.WriteString(color)
		}

		rendered.WriteString(token.Text)
	}

	rendered.WriteString(ansi.Normal)
	return rendered.String()
}

// Bytes returns the total byte count of all rendered token text. Only valid
// after Render; it is the rendering that does the counting.
func (c *LineCollector) Bytes() int {
	c.assertRendered()
	return c.bytes
}

// HighlightedBytes returns the byte count of inverse-styled token text.
func (c *LineCollector) HighlightedBytes() int {
	c.assertRendered()
	return c.highlightedBytes
}

// HighlightedCells returns the terminal cell width of inverse-styled token
// text, for diagnostics.
func (c *LineCollector) HighlightedCells() int {
	c.assertRendered()
	return c.highlightedCells
}

func (c *LineCollector) assertRendered() {
	if !c.rendered {
		panic("styledtext: statistics read before Render")
	}
}
