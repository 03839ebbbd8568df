package main

import (
	"fmt"

	"github.com/spf13/cobra"

	icl "github.com/icl-lang/icl/pkg/icl"
)

func newDiffCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file-a> <file-b>",
		Short: "Compare two contracts' canonical semantic hashes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashA, err := hashOf(flags, args[0])
			if err != nil {
				return err
			}
			hashB, err := hashOf(flags, args[1])
			if err != nil {
				return err
			}

			if hashA == hashB {
				printSuccess(flags, "identical (semantic_hash %s)", hashA)
				return nil
			}

			fmt.Printf("%s: %s\n%s: %s\n", args[0], hashA, args[1], hashB)
			return failVerification(fmt.Errorf("contracts differ"))
		},
	}
}

func hashOf(flags *globalFlags, path string) (string, error) {
	source, err := readSource(path)
	if err != nil {
		return "", err
	}
	contract, parseErr := icl.ParseContract(source)
	if parseErr != nil {
		return "", reportCoreError(flags, parseErr)
	}
	return icl.ComputeSemanticHash(contract), nil
}
