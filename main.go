package main

import (
	"os"

	"github.com/skagerrak/riffle/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, nil))
}
