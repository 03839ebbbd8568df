package config

import "testing"

func TestLoad_ReturnsBuiltInDefaultsWithNoConfigFile(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.SandboxMode != "restricted" {
		t.Errorf("expected default sandbox_mode restricted, got %q", cfg.Defaults.SandboxMode)
	}
	if cfg.Defaults.MaxMemoryBytes != 16*1024*1024 {
		t.Errorf("expected default max_memory_bytes 16MiB, got %d", cfg.Defaults.MaxMemoryBytes)
	}
	if cfg.Defaults.ComputationTimeoutMs != 5000 {
		t.Errorf("expected default computation_timeout_ms 5000, got %d", cfg.Defaults.ComputationTimeoutMs)
	}
	if cfg.Defaults.MaxStateSizeBytes != 1024*1024 {
		t.Errorf("expected default max_state_size_bytes 1MiB, got %d", cfg.Defaults.MaxStateSizeBytes)
	}
	if !cfg.Output.Color {
		t.Error("expected default output.color true")
	}
}

func TestValidate_RejectsUnknownSandboxMode(t *testing.T) {
	cfg := &Config{Defaults: DefaultsConfig{
		SandboxMode:          "yolo",
		MaxMemoryBytes:       1,
		ComputationTimeoutMs: 1,
		MaxStateSizeBytes:    1,
	}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown sandbox_mode")
	}
}

func TestValidate_RejectsZeroResourceLimits(t *testing.T) {
	base := DefaultsConfig{SandboxMode: "restricted", MaxMemoryBytes: 1, ComputationTimeoutMs: 1, MaxStateSizeBytes: 1}

	zeroMemory := base
	zeroMemory.MaxMemoryBytes = 0
	if err := validate(&Config{Defaults: zeroMemory}); err == nil {
		t.Error("expected error for zero max_memory_bytes")
	}

	zeroTimeout := base
	zeroTimeout.ComputationTimeoutMs = 0
	if err := validate(&Config{Defaults: zeroTimeout}); err == nil {
		t.Error("expected error for zero computation_timeout_ms")
	}

	zeroState := base
	zeroState.MaxStateSizeBytes = 0
	if err := validate(&Config{Defaults: zeroState}); err == nil {
		t.Error("expected error for zero max_state_size_bytes")
	}
}

func TestValidate_AcceptsValidConfig(t *testing.T) {
	cfg := &Config{Defaults: DefaultsConfig{
		SandboxMode:          "full_isolation",
		MaxMemoryBytes:       1,
		ComputationTimeoutMs: 1,
		MaxStateSizeBytes:    1,
	}}
	if err := validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
