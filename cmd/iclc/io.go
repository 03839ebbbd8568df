package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", failEnvironment(fmt.Errorf("reading %s: %w", path, err))
	}
	return string(data), nil
}

func printSuccess(flags *globalFlags, format string, args ...interface{}) {
	if flags.quiet {
		return
	}
	color.New(color.FgGreen).Printf(format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
}
