package ansi

import "bytes"

// Strip removes terminal escape sequences from line, returning the stripped
// text. An escape sequence is ESC followed by anything up to and including the
// next 'm', which covers the SGR color/style codes git and other diff
// producers emit.
//
// This lets riffle re-highlight input that was already colorized upstream.
// The returned slice aliases line's backing array.
func Strip(line []byte) []byte {
	if bytes.IndexByte(line, 0x1b) < 0 {
		return line
	}

	out := line[:0]
	inEscape := false
	for _, b := range line {
		switch {
		case inEscape:
			if b == 'm' {
				inEscape = false
			}
		case b == 0x1b:
			inEscape = true
		default:
			out = append(out, b)
		}
	}
	return out
}
