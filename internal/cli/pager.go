package cli

import (
	"io"
	"os"
	"os/exec"

	"github.com/skagerrak/riffle/internal/simplelogger"
)

// pagerForkbombStop, when set in our environment, disables pager spawning. We
// set it in the pager's environment so that PAGER=riffle cannot recurse.
const pagerForkbombStop = "RIFFLE_IGNORE_PAGER"

// runPager spawns the named pager ($PATH will be searched) and streams the
// highlighted diff to its stdin. Returns false if the pager could not be
// started, so the caller can try the next one.
func runPager(name string, in io.Reader, out, errOut io.Writer) bool {
	if os.Getenv(pagerForkbombStop) != "" {
		return false
	}

	cmd := exec.Command(name)
	cmd.Stdout = out
	cmd.Stderr = errOut
	cmd.Env = pagerEnv(os.Environ())

	pagerIn, err := cmd.StdinPipe()
	if err != nil {
		return false
	}
	if err := cmd.Start(); err != nil {
		return false
	}

	highlight(in, pagerIn)
	pagerIn.Close()

	if err := cmd.Wait(); err != nil {
		simplelogger.Log("cli: pager %s: %v", name, err)
	}
	return true
}

// pagerEnv is our environment plus the forkbomb guard, plus defaults that
// make less keep colors and quit on short output (and the same for lv).
func pagerEnv(environ []string) []string {
	env := append([]string(nil), environ...)
	env = append(env, pagerForkbombStop+"=1")
	if os.Getenv("LESS") == "" {
		env = append(env, "LESS=FRX")
	}
	if os.Getenv("LV") == "" {
		env = append(env, "LV=-c")
	}
	return env
}
