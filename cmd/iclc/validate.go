package main

import (
	"encoding/json"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	icl "github.com/icl-lang/icl/pkg/icl"
)

func newValidateCommand(flags *globalFlags, logger *zap.SugaredLogger) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a contract parses (syntax only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := runValidate(flags, path); err != nil {
				if !watch {
					return err
				}
				printError("%s", err)
			}

			if !watch {
				return nil
			}
			return watchAndRevalidate(flags, logger, path)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-run validation when the file changes on disk")
	return cmd
}

func runValidate(flags *globalFlags, path string) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	_, parseErr := icl.ParseContract(source)
	if parseErr != nil {
		return reportCoreError(flags, parseErr)
	}

	printSuccess(flags, "%s parses", path)
	return nil
}

func reportVerification(flags *globalFlags, result *icl.VerificationResult) error {
	if flags.jsonOutput {
		out, err := icl.MarshalVerificationResult(result)
		if err != nil {
			return failEnvironment(err)
		}
		fmt.Println(string(out))
	} else {
		for _, d := range result.Diagnostics {
			printError("[%s] %s: %s (line %d, col %d)", d.Severity, d.Kind, d.Message, d.Span.Line, d.Span.Column)
		}
	}

	if !result.IsValid() {
		return failVerification(fmt.Errorf("contract failed verification"))
	}
	printSuccess(flags, "contract is valid")
	return nil
}

func reportCoreError(flags *globalFlags, err *icl.Error) error {
	if flags.jsonOutput {
		out, marshalErr := json.MarshalIndent(map[string]string{
			"kind":    string(err.Kind),
			"message": err.Error(),
		}, "", "  ")
		if marshalErr != nil {
			return failEnvironment(marshalErr)
		}
		fmt.Println(string(out))
	} else {
		printError("%s", err.Error())
	}
	return failVerification(err)
}

func watchAndRevalidate(flags *globalFlags, logger *zap.SugaredLogger, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return failEnvironment(err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return failEnvironment(err)
	}

	printSuccess(flags, "watching %s for changes (ctrl-c to stop)", path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := runValidate(flags, path); err != nil {
				printError("%s", err)
			} else {
				printSuccess(flags, "contract is valid")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("watch error", "error", err)
		}
	}
}
