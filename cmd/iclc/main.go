// Command iclc is the command-line front end for the Intent Contract
// Language toolchain: argument parsing, file I/O, colored output, and exit
// codes live here, outside the core. Every subcommand is a thin wrapper
// over pkg/icl.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync() //nolint:errcheck

	root := newRootCommand(logger.Sugar())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
