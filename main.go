package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/clienv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.WasReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cmd.GetExitCode(err))
	}
}
