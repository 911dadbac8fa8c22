package cli

import (
	"fmt"
	"io"
)

const helpText = `Usage: diff ... | riffle

Colors diff output and highlights which parts of the changed lines changed.

Git integration:
    git config --global pager.diff riffle
    git config --global pager.show riffle
    git config --global interactive.diffFilter riffle

Options:
    --help     Print this text
    --version  Print the version number
`

func writeHelp(out io.Writer) {
	fmt.Fprint(out, helpText)
}
