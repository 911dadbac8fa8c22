package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/skagerrak/riffle/internal/pipeline"
)

// Version is the riffle version. It is a var (not a const) so build tooling
// can override it (for example via
// `-ldflags "-X github.com/skagerrak/riffle/internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// RunOptions override standard I/O. If nil, defaults are used. Overriding is
// useful for testing; a non-file In or Out never counts as a terminal, so
// tests always take the plain pipe path.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs riffle with args (typically you'd use os.Args) and returns a
// process exit code:
//   - 0 -> success
//   - 1 -> stdin is a terminal, there is no diff to read
//   - 2 -> argv misuse
//
// In cases of errors, Run has already displayed a message on opts.Err ||
// Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) int {
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errOut io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errOut = opts.Err
		}
	}

	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}
	for _, arg := range argv {
		switch arg {
		case "-h", "--help":
			writeHelp(out)
			return 0
		case "--version":
			fmt.Fprintf(out, "riffle %s\n", Version)
			return 0
		default:
			fmt.Fprintf(errOut, "unknown argument: %s\n\n", arg)
			writeHelp(errOut)
			return 2
		}
	}

	if isTerminal(in) {
		fmt.Fprintln(errOut, "ERROR: expected a diff on stdin")
		fmt.Fprintln(errOut)
		writeHelp(errOut)
		return 1
	}

	if !isTerminal(out) {
		// Being piped; just do stdin -> stdout.
		highlight(in, out)
		return 0
	}

	if pager := os.Getenv("PAGER"); pager != "" {
		if runPager(pager, in, out, errOut) {
			return 0
		}
	}
	if runPager("moar", in, out, errOut) {
		return 0
	}
	if runPager("less", in, out, errOut) {
		return 0
	}

	// No pager found; write to the terminal directly.
	highlight(in, out)
	return 0
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// highlight streams the whole diff from in to out.
func highlight(in io.Reader, out io.Writer) {
	c := pipeline.NewCollector(out, nil)
	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadBytes('\n')
		line = trimLineEnding(line)
		if err == nil || len(line) > 0 {
			c.ConsumeLine(line)
		}
		if err != nil {
			break
		}
	}
	c.Close()
}

// trimLineEnding removes a trailing "\n" or "\r\n".
func trimLineEnding(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
