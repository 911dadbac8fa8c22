// Package commitline formats the "commit <hash>" lines git log and git show
// put above each diff.
package commitline

import "github.com/skagerrak/riffle/internal/ansi"

// Format renders a commit line in yellow, the way git's own decoration does.
// When a diff has already been seen the commit starts a new entry in a
// multi-commit stream, so a blank separator line is added above it.
func Format(line string, diffSeen bool) string {
	formatted := ansi.Yellow + line + ansi.Normal
	if diffSeen {
		return "\n" + formatted
	}
	return formatted
}
