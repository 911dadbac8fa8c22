package pipeline

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/skagerrak/riffle/internal/ansi"
	"github.com/skagerrak/riffle/internal/commitline"
	"github.com/skagerrak/riffle/internal/refine"
)

// fixedHighlights are header prefixes that get a fixed style for the whole
// line, checked in this order.
var fixedHighlights = []struct {
	prefix string
	color  string
}{
	{"diff ", ansi.Faint},
	{"index ", ansi.Faint},
	{"Binary files ", ansi.Bold},
	{"copy from ", ansi.Faint},
	{"copy to ", ansi.Bold},
	{"rename from ", ansi.Faint},
	{"rename to ", ansi.Bold},
	{"similarity index ", ansi.Faint},
	{"new file mode ", ansi.Faint},
	{"deleted file mode ", ansi.Faint},
}

// ConsumeLine feeds one input line to the pipeline. The line must not
// include its trailing newline. Escape sequences are stripped so
// already-colored input can be re-highlighted, and invalid UTF-8 is lossily
// repaired.
func (c *Collector) ConsumeLine(rawLine []byte) {
	line := string(ansi.Strip(rawLine))
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}

	if strings.HasPrefix(line, "diff") {
		c.diffSeen = true
	}

	for _, fixed := range fixedHighlights {
		if strings.HasPrefix(line, fixed.prefix) {
			c.consumePlainPart(fixed.color)
			c.consumePlainPart(line)
			c.consumePlainLine(ansi.Normal)
			return
		}
	}

	if strings.HasPrefix(line, "commit") {
		c.consumePlainLine(commitline.Format(line, c.diffSeen))
		return
	}

	if strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
		c.consumeFilenameHeader(line)
		return
	}

	if strings.HasPrefix(line, "@@ ") {
		c.consumeHunkHeader(line)
		return
	}

	if line == "" {
		c.consumePlainLine("")
		return
	}

	if line[0] == '-' {
		c.consumeOldLine(line)
		return
	}

	if line[0] == '+' {
		c.consumeNewLine(line)
		return
	}

	if line[0] == '\\' {
		// Capture the marker's wording before consuming it. A refiner
		// worker may want to synthesize a copy of it at any moment after
		// the consume, so write-before-use avoids the race.
		c.markers.Capture(line)
		c.consumeNoEOFNewlineMarker(line)
		return
	}

	c.consumePlainLine(line)
}

// consumePlainLine appends line plus a newline to the plain block.
func (c *Collector) consumePlainLine(line string) {
	c.flushOldNew()
	c.plain.WriteString(line)
	c.plain.WriteByte('\n')
}

// consumePlainPart is consumePlainLine without the trailing newline.
func (c *Collector) consumePlainPart(part string) {
	c.flushOldNew()
	c.plain.WriteString(part)
}

func (c *Collector) consumeOldLine(line string) {
	c.flushPlain()
	c.oldText.WriteString(line[1:])
	c.oldText.WriteByte('\n')
}

func (c *Collector) consumeNewLine(line string) {
	c.flushPlain()
	c.newText.WriteString(line[1:])
	c.newText.WriteByte('\n')
}

// consumeNoEOFNewlineMarker handles a "\ No newline at end of file" line. It
// applies to whichever side was accumulated most recently: added lines come
// after removed ones, so a non-empty new buffer wins.
func (c *Collector) consumeNoEOFNewlineMarker(line string) {
	if c.newText.Len() > 0 {
		c.popTrailingNewline(&c.newText)
		return
	}
	if c.oldText.Len() > 0 {
		c.popTrailingNewline(&c.oldText)
		return
	}

	// A context line without a trailing newline; pass the marker through
	// dimmed.
	c.consumePlainLine(ansi.NoEOFNewlineColor + line + ansi.Normal)
}

// consumeFilenameHeader accumulates a "--- "/"+++ " pair. The old and new
// buffers double as staging for the two filenames; the pair completes on
// "+++ " and renders through the filename refiner.
func (c *Collector) consumeFilenameHeader(line string) {
	if oldName, ok := strings.CutPrefix(line, "--- "); ok {
		c.oldText.Reset()
		c.oldText.WriteString(oldName)
		return
	}

	newName := strings.TrimPrefix(line, "+++ ")
	if c.oldText.Len() == 0 {
		// "+++" with no preceding "---" cannot be paired; drop it.
		return
	}
	oldName := c.oldText.String()
	c.oldText.Reset()

	// /dev/null on either side means a file was created or deleted; there
	// is nothing to compare names against.
	if oldName == "/dev/null" {
		c.consumePlainLine(ansi.Faint + "--- /dev/null" + ansi.Normal)
		c.consumePlainLine(ansi.Bold + "+++ " + newName + ansi.Normal)
		return
	}
	if newName == "/dev/null" {
		c.consumePlainLine(ansi.Bold + "--- " + oldName + ansi.Normal)
		c.consumePlainLine(ansi.Faint + "+++ /dev/null" + ansi.Normal)
		return
	}

	oldLine, newLine := refine.Filenames(oldName, newName)
	c.consumePlainLine(oldLine)
	c.consumePlainLine(newLine)
}

// consumeHunkHeader renders an "@@ -1,2 +1,2 @@ func name" header: the line
// range part faint cyan, the optional function name bold.
func (c *Collector) consumeHunkHeader(line string) {
	c.consumePlainPart(ansi.Cyan)

	if i := strings.Index(line, " @@ "); i >= 0 {
		c.consumePlainPart(ansi.Faint)
		c.consumePlainPart(line[:i+len(" @@ ")])
		c.consumePlainPart(ansi.Bold)
		c.consumePlainPart(line[i+len(" @@ "):])
	} else {
		c.consumePlainPart(line)
	}

	c.consumePlainLine(ansi.Normal)
}

// popTrailingNewline removes the newline a just-consumed "-"/"+" line put on
// the buffer. The newline is guaranteed by construction; its absence means
// the accumulation state machine is broken.
func (c *Collector) popTrailingNewline(buf *bytes.Buffer) {
	b := buf.Bytes()
	if len(b) == 0 || b[len(b)-1] != '\n' {
		panic("pipeline: accumulated block does not end in a newline")
	}
	buf.Truncate(len(b) - 1)
}
