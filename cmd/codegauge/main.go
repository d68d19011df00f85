// Package main provides the entry point for the codegauge CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/codegauge/cmd/codegauge/commands"
	"github.com/Sumatoshi-tech/codegauge/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
