// Package config loads CLI-layer defaults for iclc: sandbox mode and
// resource limit defaults offered by `icl init`, and output preferences.
// The core toolchain (lexer through executor) takes no configuration of its
// own — every parameter it needs arrives as an explicit argument or as data
// already present in contract text.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the CLI's optional icl.yml/ICL_* environment configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Output   OutputConfig   `mapstructure:"output"`
}

// DefaultsConfig seeds values offered by `icl init`'s interactive prompts.
type DefaultsConfig struct {
	SandboxMode          string `mapstructure:"sandbox_mode"`
	MaxMemoryBytes       uint64 `mapstructure:"max_memory_bytes"`
	ComputationTimeoutMs uint64 `mapstructure:"computation_timeout_ms"`
	MaxStateSizeBytes    uint64 `mapstructure:"max_state_size_bytes"`
	Owner                string `mapstructure:"owner"`
}

// OutputConfig controls CLI presentation.
type OutputConfig struct {
	Color bool `mapstructure:"color"`
}

// Load reads icl.yml/icl.yaml from the current directory, if present,
// falling back to built-in defaults, with ICL_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("defaults.sandbox_mode", "restricted")
	v.SetDefault("defaults.max_memory_bytes", uint64(16*1024*1024))
	v.SetDefault("defaults.computation_timeout_ms", uint64(5000))
	v.SetDefault("defaults.max_state_size_bytes", uint64(1024*1024))
	v.SetDefault("defaults.owner", "")
	v.SetDefault("output.color", true)

	v.SetConfigName("icl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ICL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read icl.yml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal icl config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Defaults.SandboxMode {
	case "full_isolation", "restricted", "none":
	default:
		return fmt.Errorf("defaults.sandbox_mode must be one of full_isolation|restricted|none, got: %s", cfg.Defaults.SandboxMode)
	}
	if cfg.Defaults.MaxMemoryBytes == 0 {
		return fmt.Errorf("defaults.max_memory_bytes must be positive")
	}
	if cfg.Defaults.ComputationTimeoutMs == 0 {
		return fmt.Errorf("defaults.computation_timeout_ms must be positive")
	}
	if cfg.Defaults.MaxStateSizeBytes == 0 {
		return fmt.Errorf("defaults.max_state_size_bytes must be positive")
	}
	return nil
}
