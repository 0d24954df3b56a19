// Command austra is the command-line front end for the AUSTRA
// expression-language compiler: tokenize, parse, type-check, and
// explore completion data from a terminal, without embedding the
// language in a host application.
package main

import (
	"fmt"
	"os"

	"github.com/austra-lang/austra/cmd/austra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
