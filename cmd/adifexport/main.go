// Package main is the entry point for the adifexport CLI.
package main

import (
	"os"

	"github.com/g3zod/adifexport/cmd/adifexport/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
