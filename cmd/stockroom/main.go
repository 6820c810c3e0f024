// Package main is the entry point for the stockroom CLI.
package main

import (
	"fmt"
	"os"

	"stockroom/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
