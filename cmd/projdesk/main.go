// projdesk is the command-line surface of the project manager backend. Every
// subcommand maps to one engine operation and prints its result as JSON.
package main

import (
	"fmt"
	"os"
)

func main() {
	inj := buildContainer()
	defer func() { _ = inj.Shutdown() }()

	if err := newRootCmd(inj).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
