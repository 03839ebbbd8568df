package main

import (
	"fmt"

	"github.com/spf13/cobra"

	icl "github.com/icl-lang/icl/pkg/icl"
)

func newNormalizeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file>",
		Short: "Print a contract's canonical text form, with semantic_hash populated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			text, normErr := icl.Normalize(source)
			if normErr != nil {
				return reportCoreError(flags, normErr)
			}

			fmt.Print(text)
			return nil
		},
	}
}
