package main

import (
	"fmt"
	"os"

	"github.com/roach88/edict/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		code := cli.GetExitCode(err)
		// Parse and suite failures already printed structured output;
		// only surface unexpected command errors here.
		if code == cli.ExitCommandError {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(code)
	}
}
