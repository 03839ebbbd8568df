package main

import (
	"fmt"

	"github.com/spf13/cobra"

	icl "github.com/icl-lang/icl/pkg/icl"
)

func newHashCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "Print a contract's content-addressed semantic hash",
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

			fmt.Println(icl.ComputeSemanticHash(contract))
			return nil
		},
	}
}
