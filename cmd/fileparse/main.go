package main

import (
	"fmt"
	"os"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/errors"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, cli.ErrorText("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}
