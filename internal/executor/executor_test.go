package executor

import (
	"strings"
	"testing"

	"github.com/icl-lang/icl/internal/parser"

	"github.com/icl-lang/icl/internal/lowering"
)

const executorContractSource = `Contract {
  Identity {
    stable_id: "order-fulfillment",
    version: 1,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "team",
    semantic_hash: "0000000000000000000000000000000000000000000000000000000000000000",
  }
  PurposeStatement {
    narrative: "Tracks an order.",
    intent_source: "doc",
    confidence_level: 0.9,
  }
  DataSemantics {
    state: {
      status: String = "pending",
      retries: Integer = 0,
    },
    invariants: ["retries >= 0"],
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
      },
      {
        name: "retry",
        precondition: "retries <= 3",
        parameters: {},
        postcondition: "retries >= 0",
        side_effects: [],
        idempotence: "not_idempotent",
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

func lowerSource(t *testing.T, src string) *lowering.Contract {
	t.Helper()
	c, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return lowering.Lower(c)
}

func TestNew_BuildsInitialStateFromDefaults(t *testing.T) {
	exec := New(lowerSource(t, executorContractSource))
	state := exec.State()

	status, ok := state["status"]
	if !ok || status.Kind != ValueString || status.Str != "pending" {
		t.Errorf("expected status = \"pending\", got %+v", status)
	}
	retries, ok := state["retries"]
	if !ok || retries.Kind != ValueInteger || retries.Int != 0 {
		t.Errorf("expected retries = 0, got %+v", retries)
	}
}

func TestExecuteOperation_SuccessAppendsProvenance(t *testing.T) {
	exec := New(lowerSource(t, executorContractSource))

	res, err := exec.ExecuteOperation("mark_shipped", []byte(`{"tracking_number": "1Z999"}`))
	if err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if !res.Success {
		t.Fatal("expected success")
	}

	prov := exec.Provenance()
	if len(prov.Entries) != 1 {
		t.Fatalf("expected 1 provenance entry, got %d", len(prov.Entries))
	}
	if prov.Entries[0].Operation != "mark_shipped" {
		t.Errorf("expected operation mark_shipped, got %q", prov.Entries[0].Operation)
	}
	if !prov.Entries[0].PostconditionsVerified || !prov.Entries[0].InvariantsVerified {
		t.Error("expected postconditions and invariants verified")
	}
}

func TestExecuteOperation_MissingRequiredInputFails(t *testing.T) {
	exec := New(lowerSource(t, executorContractSource))
	_, err := exec.ExecuteOperation("mark_shipped", []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for missing required input")
	}
	if len(exec.Provenance().Entries) != 0 {
		t.Error("expected no provenance entry on failed validation")
	}
}

func TestExecuteOperation_UnknownOperationFails(t *testing.T) {
	exec := New(lowerSource(t, executorContractSource))
	_, err := exec.ExecuteOperation("does_not_exist", []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestExecuteOperation_PermissionDeniedUnderRestrictedMode(t *testing.T) {
	src := executorContractSource
	// retry declares no side effects, so it should always pass permission
	// checks regardless of external_permissions; mark_shipped requires
	// state_mutation which is granted, so construct a variant lacking it.
	noPermsSrc := replaceForTest(t, src, `external_permissions: ["state_mutation"],`, `external_permissions: [],`)
	exec := New(lowerSource(t, noPermsSrc))

	_, err := exec.ExecuteOperation("mark_shipped", []byte(`{"tracking_number": "1Z999"}`))
	if err == nil {
		t.Fatal("expected permission error when state_mutation is not granted")
	}
}

func TestExecuteOperation_RollsBackStateOnPostconditionFailure(t *testing.T) {
	// status starts at "pending"; forging an operation whose postcondition
	// can never hold lets us assert the state snapshot is restored.
	src := replaceForTest(t, executorContractSource,
		`postcondition: "status is not empty",
        side_effects: ["state_mutation"],
        idempotence: "idempotent",
      },
      {
        name: "retry",`,
		`postcondition: "status is boolean",
        side_effects: ["state_mutation"],
        idempotence: "idempotent",
      },
      {
        name: "retry",`)
	exec := New(lowerSource(t, src))
	before := exec.State()

	_, err := exec.ExecuteOperation("mark_shipped", []byte(`{"tracking_number": "1Z999"}`))
	if err == nil {
		t.Fatal("expected postcondition failure (status is a string, not boolean)")
	}

	after := exec.State()
	if !valuesEqual(before["status"], after["status"]) {
		t.Error("expected state rolled back after postcondition failure")
	}
	if len(exec.Provenance().Entries) != 0 {
		t.Error("expected no provenance entry after rollback")
	}
}

func TestExecuteAll_StopsAtFirstFailure(t *testing.T) {
	exec := New(lowerSource(t, executorContractSource))
	requests := []Request{
		{Operation: "mark_shipped", Inputs: []byte(`{"tracking_number": "1Z999"}`)},
		{Operation: "does_not_exist", Inputs: []byte(`{}`)},
		{Operation: "retry", Inputs: []byte(`{}`)},
	}

	result := exec.ExecuteAll(requests)
	if result.Success {
		t.Fatal("expected overall failure")
	}
	if len(result.Operations) != 2 {
		t.Fatalf("expected 2 operation results (success then failure), got %d", len(result.Operations))
	}
	if !result.Operations[0].Success {
		t.Error("expected first operation to have succeeded")
	}
	if result.Operations[1].Success {
		t.Error("expected second operation to have failed")
	}
	if result.Error == nil {
		t.Error("expected top-level error to be set")
	}
}

func TestParseRequests_SingleObjectAndArray(t *testing.T) {
	reqs, err := ParseRequests([]byte(`{"operation": "retry", "inputs": {}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Operation != "retry" {
		t.Fatalf("unexpected single-object parse result: %+v", reqs)
	}

	reqs, err = ParseRequests([]byte(`[{"operation": "retry", "inputs": {}}, {"operation": "mark_shipped", "inputs": {}}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
}

func TestParseRequests_EmptyBodyFails(t *testing.T) {
	_, err := ParseRequests([]byte(`   `))
	if err == nil {
		t.Fatal("expected error for empty request body")
	}
}

func TestExecuteContract_RendersJSON(t *testing.T) {
	contract := lowerSource(t, executorContractSource)
	out, err := ExecuteContract(contract, []byte(`{"operation": "retry", "inputs": {}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty rendered result")
	}
}

func replaceForTest(t *testing.T, src, old, new string) string {
	t.Helper()
	if !strings.Contains(src, old) {
		t.Fatalf("substring not found: %q", old)
	}
	return strings.Replace(src, old, new, 1)
}
