package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skagerrak/riffle/internal/ansi"
)

// feed runs lines through a fresh collector and returns the output.
func feed(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := NewCollector(&out, nil)
	for _, line := range lines {
		c.ConsumeLine([]byte(line))
	}
	c.Close()
	return out.String()
}

func TestOutputOrderMatchesInputOrder(t *testing.T) {
	// Interleave plain and diff blocks and artificially slow down the
	// refinement of every other diff block. The output must still come out
	// in input order.
	var out bytes.Buffer
	c := NewCollector(&out, &Options{PoolSize: 4, QueueDepth: 8})
	c.refineBlock = func(oldText, newText string) string {
		if strings.Contains(oldText, "2") || strings.Contains(oldText, "5") {
			time.Sleep(50 * time.Millisecond)
		}
		return "diff:" + strings.TrimSuffix(oldText, "\n") + "\n"
	}

	const n = 8
	var want strings.Builder
	for i := 0; i < n; i++ {
		c.ConsumeLine([]byte(fmt.Sprintf("-old%d", i)))
		c.ConsumeLine([]byte(fmt.Sprintf("context%d", i)))
		want.WriteString(fmt.Sprintf("diff:old%d\ncontext%d\n", i, i))
	}
	c.Close()

	require.Equal(t, want.String(), out.String())
}

func TestRemoveTrailingNewline(t *testing.T) {
	got := feed(t,
		"-hej",
		"+hej",
		`\ No newline at end of file`,
	)

	// The marker popped the new side's newline; both sides render flat (the
	// removed newline's run touches two line boundaries) and the new side
	// gets a dim copy of the captured marker.
	want := ansi.Old + "-hej" + ansi.Normal + "\n" +
		ansi.New + "+hej" + ansi.Normal + "\n" +
		ansi.NoEOFNewlineColor + `\ No newline at end of file` + ansi.Normal + "\n"
	require.Equal(t, want, got)
}

func TestTrailingNewlineContext(t *testing.T) {
	got := feed(t,
		"+bepa",
		" apa",
		`\ No newline at end of file`,
	)

	want := ansi.New + "+bepa" + ansi.Normal + "\n" +
		" apa\n" +
		ansi.NoEOFNewlineColor + `\ No newline at end of file` + ansi.Normal + "\n"
	require.Equal(t, want, got)
}

func TestFixedHighlightHeaders(t *testing.T) {
	tests := []struct {
		line  string
		color string
	}{
		{"diff --git a/x b/x", ansi.Faint},
		{"index 0123456..789abcd 100644", ansi.Faint},
		{"Binary files a/img.png and b/img.png differ", ansi.Bold},
		{"rename from old_name.go", ansi.Faint},
		{"rename to new_name.go", ansi.Bold},
		{"similarity index 97%", ansi.Faint},
		{"new file mode 100644", ansi.Faint},
		{"deleted file mode 100644", ansi.Faint},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			require.Equal(t, tt.color+tt.line+ansi.Normal+"\n", feed(t, tt.line))
		})
	}
}

func TestHunkHeader(t *testing.T) {
	// With a function name: range part faint, function name bold.
	got := feed(t, "@@ -1,3 +1,3 @@ func main()")
	want := ansi.Cyan + ansi.Faint + "@@ -1,3 +1,3 @@ " + ansi.Bold + "func main()" + ansi.Normal + "\n"
	require.Equal(t, want, got)

	// Without one: the whole line in hunk color.
	got = feed(t, "@@ -1,3 +1,3 @@")
	require.Equal(t, ansi.Cyan+"@@ -1,3 +1,3 @@"+ansi.Normal+"\n", got)
}

func TestFilenameHeaderPair(t *testing.T) {
	got := feed(t, "--- a/x.txt", "+++ b/x.txt")
	require.Equal(t,
		ansi.Bold+"--- a/x.txt"+ansi.Normal+"\n"+ansi.Bold+"+++ b/x.txt"+ansi.Normal+"\n",
		got)
}

func TestFilenameHeaderDevNull(t *testing.T) {
	// New file:
	got := feed(t, "--- /dev/null", "+++ b/new.txt")
	require.Equal(t,
		ansi.Faint+"--- /dev/null"+ansi.Normal+"\n"+ansi.Bold+"+++ b/new.txt"+ansi.Normal+"\n",
		got)

	// Deleted file:
	got = feed(t, "--- a/gone.txt", "+++ /dev/null")
	require.Equal(t,
		ansi.Bold+"--- a/gone.txt"+ansi.Normal+"\n"+ansi.Faint+"+++ /dev/null"+ansi.Normal+"\n",
		got)
}

func TestUnpairedPlusPlusPlusIsDropped(t *testing.T) {
	require.Equal(t, "", feed(t, "+++ b/orphan.txt"))
}

func TestEmptyAndPlainLinesPassThrough(t *testing.T) {
	got := feed(t, " context", "", " more context")
	require.Equal(t, " context\n\n more context\n", got)
}

func TestCommitLine(t *testing.T) {
	commit := "commit 0123456789abcdef0123456789abcdef01234567"

	// Before any diff: no separator.
	require.Equal(t, ansi.Yellow+commit+ansi.Normal+"\n", feed(t, commit))

	// After a diff has been seen: blank separator line above.
	got := feed(t, "diff --git a/x b/x", commit)
	require.Equal(t,
		ansi.Faint+"diff --git a/x b/x"+ansi.Normal+"\n"+
			"\n"+ansi.Yellow+commit+ansi.Normal+"\n",
		got)
}

func TestIncomingEscapesAreStripped(t *testing.T) {
	// Already-colored context input is stripped and re-emitted plain.
	got := feed(t, "\x1b[32m context\x1b[0m")
	require.Equal(t, " context\n", got)
}

func TestInvalidUTF8IsRepaired(t *testing.T) {
	got := feed(t, " abc\xffdef")
	require.Equal(t, " abc�def\n", got)
}

func TestNoEOFNewlineMarkerOnOldSide(t *testing.T) {
	got := feed(t,
		"-hej",
		`\ No newline at end of file`,
		"+hej",
	)

	// The marker popped the old side's newline this time.
	want := ansi.Old + "-hej" + ansi.Normal + "\n" +
		ansi.NoEOFNewlineColor + `\ No newline at end of file` + ansi.Normal + "\n" +
		ansi.New + "+hej" + ansi.Normal + "\n"
	require.Equal(t, want, got)
}

func TestBlockBoundaries(t *testing.T) {
	// A context line between two removed runs must produce two separate
	// diff blocks.
	var blocks []string
	var out bytes.Buffer
	c := NewCollector(&out, &Options{PoolSize: 1})
	c.refineBlock = func(oldText, newText string) string {
		blocks = append(blocks, oldText+"|"+newText)
		return "x\n"
	}

	c.ConsumeLine([]byte("-a"))
	c.ConsumeLine([]byte(" ctx"))
	c.ConsumeLine([]byte("-b"))
	c.ConsumeLine([]byte("+c"))
	c.Close()

	require.Equal(t, []string{"a\n|", "b\n|c\n"}, blocks)
	require.Equal(t, "x\n ctx\nx\n", out.String())
}
