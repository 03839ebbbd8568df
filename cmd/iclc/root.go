package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exitError tags a command failure with the exit code it should produce:
// 1 for verification/execution failure, 2 for environment/IO error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func failVerification(err error) error { return &exitError{code: 1, err: err} }
func failEnvironment(err error) error  { return &exitError{code: 2, err: err} }

func exitCodeFor(err error) int {
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return 2
}

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	jsonOutput bool
	quiet      bool
}

func newRootCommand(logger *zap.SugaredLogger) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "iclc",
		Short: "Intent Contract Language compiler and tooling",
		Long: color.CyanString(`iclc - Intent Contract Language toolchain

Parses, normalizes, verifies, and executes .icl contract documents.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "emit structured JSON output")
	root.PersistentFlags().BoolVar(&flags.quiet, "quiet", false, "suppress non-error stdout")

	root.AddCommand(newVersionCommand())
	root.AddCommand(newValidateCommand(flags, logger))
	root.AddCommand(newNormalizeCommand(flags))
	root.AddCommand(newVerifyCommand(flags))
	root.AddCommand(newFmtCommand(flags))
	root.AddCommand(newHashCommand(flags))
	root.AddCommand(newDiffCommand(flags))
	root.AddCommand(newInitCommand(flags))
	root.AddCommand(newExecuteCommand(flags))
	root.AddCommand(newLSPCommand(logger))

	return root
}
