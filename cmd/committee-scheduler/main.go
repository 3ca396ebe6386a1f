package main

import (
	"fmt"
	"os"

	"github.com/VOST-dev/committee-scheduler/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		// The run-level FAILURE history entries were written before the
		// error reached us; all that is left is to report and set the
		// exit status.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}
}
