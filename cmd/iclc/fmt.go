package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	icl "github.com/icl-lang/icl/pkg/icl"
)

func newFmtCommand(flags *globalFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Reformat a contract into canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := readSource(path)
			if err != nil {
				return err
			}

			text, normErr := icl.Normalize(source)
			if normErr != nil {
				return reportCoreError(flags, normErr)
			}

			if write {
				if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
					return failEnvironment(fmt.Errorf("writing %s: %w", path, err))
				}
				printSuccess(flags, "formatted %s", path)
				return nil
			}

			fmt.Print(text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "overwrite the file in place instead of printing to stdout")
	return cmd
}
