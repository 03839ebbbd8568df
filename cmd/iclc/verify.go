package main

import (
	"github.com/spf13/cobra"

	icl "github.com/icl-lang/icl/pkg/icl"
)

func newVerifyCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Run all four verification phases and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			contract, parseErr := icl.ParseContract(source)
			if parseErr != nil {
				return reportCoreError(flags, parseErr)
			}

			result := icl.Verify(contract)
			return reportVerification(flags, result)
		},
	}
}
