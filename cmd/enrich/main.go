// ABOUTME: Command line entry point that enriches a local table file
// ABOUTME: Uses the same environment configuration as the API server and prints JSON

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "enrich: %v\n", err)
		os.Exit(exitCode(err))
	}
}
