package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	icl "github.com/icl-lang/icl/pkg/icl"
)

func newExecuteCommand(flags *globalFlags) *cobra.Command {
	var requestsPath string

	cmd := &cobra.Command{
		Use:   "execute <file>",
		Short: "Run operation requests against a contract and print the execution result",
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

			requestsJSON, err := readRequests(requestsPath)
			if err != nil {
				return err
			}

			lowered := icl.Lower(contract)
			result, execErr := icl.ExecuteContract(lowered, requestsJSON)
			if execErr != nil {
				return reportCoreError(flags, execErr)
			}

			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&requestsPath, "requests", "-", "path to a JSON operation request (object or array); '-' reads stdin")
	return cmd
}

func readRequests(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, failEnvironment(fmt.Errorf("reading requests from stdin: %w", err))
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, failEnvironment(fmt.Errorf("reading %s: %w", path, err))
	}
	return data, nil
}
