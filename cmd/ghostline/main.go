// Package main is the entry point for the ghostline CLI.
package main

import (
	"os"

	"github.com/runger/ghostline/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
