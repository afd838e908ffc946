// Package main provides the entry point for the nhm-crowdin-parser CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/S74nk0/nhm-crowdin-parser/cmd/nhm-crowdin-parser/commands"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
