package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/icl-lang/icl/internal/config"
)

type initAnswers struct {
	StableID    string
	Owner       string
	SandboxMode string
}

func newInitCommand(flags *globalFlags) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively scaffold a new contract document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgErr := config.Load()
			if cfgErr != nil {
				return failEnvironment(cfgErr)
			}

			answers := initAnswers{SandboxMode: cfg.Defaults.SandboxMode, Owner: cfg.Defaults.Owner}

			questions := []*survey.Question{
				{
					Name:     "StableID",
					Prompt:   &survey.Input{Message: "Stable ID:", Default: "contract-" + uuid.NewString()[:8]},
					Validate: survey.Required,
				},
				{
					Name:     "Owner",
					Prompt:   &survey.Input{Message: "Owner:", Default: answers.Owner},
					Validate: survey.Required,
				},
				{
					Name: "SandboxMode",
					Prompt: &survey.Select{
						Message: "Sandbox mode:",
						Options: []string{"full_isolation", "restricted", "none"},
						Default: answers.SandboxMode,
					},
				},
			}

			if err := survey.Ask(questions, &answers); err != nil {
				return failEnvironment(err)
			}

			text := scaffold(answers, cfg)

			if outputPath == "" {
				fmt.Print(text)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
				return failEnvironment(fmt.Errorf("writing %s: %w", outputPath, err))
			}
			printSuccess(flags, "wrote %s", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the scaffold to this path instead of stdout")
	return cmd
}

func scaffold(a initAnswers, cfg *config.Config) string {
	return fmt.Sprintf(`Contract {
  Identity {
    stable_id: %q,
    version: 1,
    created_timestamp: "1970-01-01T00:00:00Z",
    owner: %q,
    semantic_hash: "0000000000000000000000000000000000000000000000000000000000000000",
  }
  PurposeStatement {
    narrative: "TODO: describe what this contract is responsible for.",
    intent_source: "icl init",
    confidence_level: 0.5,
  }
  DataSemantics {
    state: {
    },
    invariants: [],
  }
  BehavioralSemantics {
    operations: [],
  }
  ExecutionConstraints {
    trigger_types: ["manual"],
    resource_limits: {
      max_memory_bytes: %d,
      computation_timeout_ms: %d,
      max_state_size_bytes: %d,
    },
    external_permissions: [],
    sandbox_mode: %q,
  }
  HumanMachineContract {
    system_commitments: [],
    system_refusals: [],
    user_obligations: [],
  }
}
`, a.StableID, a.Owner, cfg.Defaults.MaxMemoryBytes, cfg.Defaults.ComputationTimeoutMs, cfg.Defaults.MaxStateSizeBytes, a.SandboxMode)
}
