// Package ansi holds the terminal escape sequences riffle emits, and Strip,
// which removes escape sequences from incoming text.
package ansi

// SGR sequences used when rendering diffs. Old and Error are both red on
// purpose; Error additionally gets inverse video from the styling layer.
const (
	Old   = "\x1b[31m" // red
	New   = "\x1b[32m" // green
	Error = "\x1b[31m" // red

	InverseVideo    = "\x1b[7m"
	NotInverseVideo = "\x1b[27m"

	Bold  = "\x1b[1m"
	Faint = "\x1b[2m"

	Yellow = "\x1b[33m"
	Cyan   = "\x1b[36m"

	NoEOFNewlineColor = "\x1b[2m" // faint

	Normal = "\x1b[0m"
)

// NoEOFNewlineMarker is the English wording of the marker diff emits for a
// file that does not end in a newline. The actual input may phrase it in
// another locale; see the pipeline's marker store.
const NoEOFNewlineMarker = `\ No newline at end of file`
