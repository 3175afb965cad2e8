// Package main provides the CLI for the splitpane layout editor.
package main

import (
	"os"

	"github.com/leapstack-labs/splitpane/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
