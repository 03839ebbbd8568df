package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/icl-lang/icl/internal/config"
	icl "github.com/icl-lang/icl/pkg/icl"
)

const validContractSource = `Contract {
  Identity {
    stable_id: "order-fulfillment",
    version: 1,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "fulfillment-team",
    semantic_hash: "0000000000000000000000000000000000000000000000000000000000000000",
  }
  PurposeStatement {
    narrative: "Tracks an order through shipment.",
    intent_source: "product requirements doc",
    confidence_level: 0.9,
  }
  DataSemantics {
    state: {
      status: String = "pending",
    },
    invariants: ["status is never empty"],
  }
  BehavioralSemantics {
    operations: [
      {
        name: "mark_shipped",
        precondition: "status is not empty",
        parameters: {
          tracking_number: String,
        },
        postcondition: "status is not empty",
        side_effects: ["state_mutation"],
        idempotence: "idempotent",
      }
    ],
  }
  ExecutionConstraints {
    trigger_types: ["manual"],
    resource_limits: {
      max_memory_bytes: 16777216,
      computation_timeout_ms: 5000,
      max_state_size_bytes: 1048576,
    },
    external_permissions: ["state_mutation"],
    sandbox_mode: "restricted",
  }
  HumanMachineContract {
    system_commitments: [],
    system_refusals: [],
    user_obligations: [],
  }
}`

func writeTempContract(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract.icl")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp contract: %v", err)
	}
	return path
}

func TestExitCodeFor_MapsExitErrorCodes(t *testing.T) {
	if code := exitCodeFor(failVerification(errors.New("bad"))); code != 1 {
		t.Errorf("expected code 1 for verification failure, got %d", code)
	}
	if code := exitCodeFor(failEnvironment(errors.New("bad"))); code != 2 {
		t.Errorf("expected code 2 for environment failure, got %d", code)
	}
	if code := exitCodeFor(errors.New("plain")); code != 2 {
		t.Errorf("expected code 2 as default for a plain error, got %d", code)
	}
}

func TestExitError_UnwrapsUnderlyingError(t *testing.T) {
	underlying := errors.New("boom")
	wrapped := failVerification(underlying)
	if !errors.Is(wrapped, underlying) {
		t.Error("expected errors.Is to see through exitError to the underlying error")
	}
}

func TestReadSource_MissingFileFailsAsEnvironmentError(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "does-not-exist.icl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if exitCodeFor(err) != 2 {
		t.Errorf("expected environment exit code, got %d", exitCodeFor(err))
	}
}

func TestReadSource_ReadsFileContents(t *testing.T) {
	path := writeTempContract(t, validContractSource)
	source, err := readSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != validContractSource {
		t.Error("expected file contents to round-trip unchanged")
	}
}

func TestReportCoreError_FailsWithVerificationExitCode(t *testing.T) {
	_, parseErr := icl.ParseContract("Contract { not valid")
	if parseErr == nil {
		t.Fatal("expected a parse error from invalid source")
	}
	err := reportCoreError(&globalFlags{quiet: true}, parseErr)
	if exitCodeFor(err) != 1 {
		t.Errorf("expected exit code 1 for a core parse error, got %d", exitCodeFor(err))
	}
}

func TestReportVerification_PassesOnValidContract(t *testing.T) {
	contract, err := icl.ParseContract(validContractSource)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	result := icl.Verify(contract)
	if reportErr := reportVerification(&globalFlags{quiet: true}, result); reportErr != nil {
		t.Errorf("expected a valid contract to report success, got %v", reportErr)
	}
}

func TestHashOf_IsDeterministicAcrossCalls(t *testing.T) {
	flags := &globalFlags{quiet: true}
	path := writeTempContract(t, validContractSource)

	hashA, err := hashOf(flags, path)
	if err != nil {
		t.Fatalf("unexpected error hashing %s: %v", path, err)
	}
	hashB, err := hashOf(flags, path)
	if err != nil {
		t.Fatalf("unexpected error hashing %s: %v", path, err)
	}
	if hashA != hashB {
		t.Errorf("expected identical hashes across calls, got %s and %s", hashA, hashB)
	}
	if len(hashA) != 64 {
		t.Errorf("expected a 64-character hex hash, got %q", hashA)
	}
}

func TestHashOf_PropagatesParseErrorAsVerificationFailure(t *testing.T) {
	path := writeTempContract(t, "Contract { not valid")
	_, err := hashOf(&globalFlags{quiet: true}, path)
	if err == nil {
		t.Fatal("expected error for unparsable contract")
	}
	if exitCodeFor(err) != 1 {
		t.Errorf("expected verification exit code, got %d", exitCodeFor(err))
	}
}

func TestScaffold_ProducesParsableContract(t *testing.T) {
	answers := initAnswers{StableID: "new-contract", Owner: "team", SandboxMode: "restricted"}
	cfg := &config.Config{Defaults: config.DefaultsConfig{
		MaxMemoryBytes:       16777216,
		ComputationTimeoutMs: 5000,
		MaxStateSizeBytes:    1048576,
	}}
	text := scaffold(answers, cfg)

	contract, err := icl.ParseContract(text)
	if err != nil {
		t.Fatalf("expected scaffolded contract to parse, got error: %v", err)
	}
	if contract.Identity.StableID != "new-contract" {
		t.Errorf("expected scaffolded stable_id to round-trip, got %q", contract.Identity.StableID)
	}
}
