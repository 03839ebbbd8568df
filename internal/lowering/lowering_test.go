package lowering

import (
	"testing"

	"github.com/icl-lang/icl/internal/parser"
)

const loweringContractSource = `Contract {
  Identity {
    stable_id: "widget-tracker",
    version: 3,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "team",
    semantic_hash: "0000000000000000000000000000000000000000000000000000000000000000",
  }
  PurposeStatement {
    narrative: "Tracks widgets.",
    intent_source: "doc",
    confidence_level: 0.8,
  }
  DataSemantics {
    state: {
      status: String = "pending",
      count: Integer = 0,
    },
    invariants: ["count is never negative"],
  }
  BehavioralSemantics {
    operations: [
      {
        name: "increment",
        precondition: "true",
        parameters: {
          amount: Integer,
        },
        postcondition: "count increased",
        side_effects: ["state_mutation"],
        idempotence: "not_idempotent",
      }
    ],
  }
  ExecutionConstraints {
    trigger_types: ["manual"],
    resource_limits: {
      max_memory_bytes: 1024,
      computation_timeout_ms: 500,
      max_state_size_bytes: 2048,
    },
    external_permissions: ["read"],
    sandbox_mode: "restricted",
  }
  HumanMachineContract {
    system_commitments: ["will count accurately"],
    system_refusals: [],
    user_obligations: [],
  }
}`

func TestLower_CopiesScalarFields(t *testing.T) {
	c, err := parser.ParseSource(loweringContractSource)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	lowered := Lower(c)

	if lowered.Identity.StableID != "widget-tracker" {
		t.Errorf("expected stable_id widget-tracker, got %q", lowered.Identity.StableID)
	}
	if lowered.Identity.Version != 3 {
		t.Errorf("expected version 3, got %d", lowered.Identity.Version)
	}
	if lowered.ExecutionConstraints.ResourceLimits.MaxMemoryBytes != 1024 {
		t.Errorf("expected max_memory_bytes 1024, got %d", lowered.ExecutionConstraints.ResourceLimits.MaxMemoryBytes)
	}
}

func TestLower_StateFieldsPreserveOrderAndDefaults(t *testing.T) {
	c, err := parser.ParseSource(loweringContractSource)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	lowered := Lower(c)

	if len(lowered.StateOrder) != 2 || lowered.StateOrder[0] != "status" || lowered.StateOrder[1] != "count" {
		t.Fatalf("unexpected state order: %v", lowered.StateOrder)
	}
	status := lowered.State["status"]
	if status.Default == nil || status.Default.Str != "pending" {
		t.Errorf("expected status default 'pending', got %+v", status.Default)
	}
	count := lowered.State["count"]
	if count.Default == nil || count.Default.Int != 0 {
		t.Errorf("expected count default 0, got %+v", count.Default)
	}
}

func TestLower_OperationParametersCollapseToMap(t *testing.T) {
	c, err := parser.ParseSource(loweringContractSource)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	lowered := Lower(c)

	if len(lowered.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(lowered.Operations))
	}
	op := lowered.Operations[0]
	if op.Parameters["amount"] != "Integer" {
		t.Errorf("expected amount parameter type Integer, got %q", op.Parameters["amount"])
	}
	if len(op.ParameterOrder) != 1 || op.ParameterOrder[0] != "amount" {
		t.Errorf("unexpected parameter order: %v", op.ParameterOrder)
	}
}

func TestTypeString_RendersCompositeTypes(t *testing.T) {
	src := `Contract {
  Identity {
    stable_id: "x",
    version: 1,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "team",
    semantic_hash: "0000000000000000000000000000000000000000000000000000000000000000",
  }
  PurposeStatement {
    narrative: "n",
    intent_source: "s",
    confidence_level: 0.5,
  }
  DataSemantics {
    state: {
      tags: Array<String>,
      counts: Map<String, Integer>,
      status: Enum["open", "closed"],
      detail: Object { name: String, score: Integer },
    },
    invariants: [],
  }
  BehavioralSemantics {
    operations: [],
  }
  ExecutionConstraints {
    trigger_types: ["manual"],
    resource_limits: {
      max_memory_bytes: 1,
      computation_timeout_ms: 1,
      max_state_size_bytes: 1,
    },
    external_permissions: [],
    sandbox_mode: "none",
  }
  HumanMachineContract {
    system_commitments: [],
    system_refusals: [],
    user_obligations: [],
  }
}`
	c, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	lowered := Lower(c)

	if lowered.State["tags"].Type != "Array<String>" {
		t.Errorf("expected Array<String>, got %q", lowered.State["tags"].Type)
	}
	if lowered.State["counts"].Type != "Map<String,Integer>" {
		t.Errorf("expected Map<String,Integer>, got %q", lowered.State["counts"].Type)
	}
	if lowered.State["status"].Type != `Enum["open","closed"]` {
		t.Errorf("expected Enum[\"open\",\"closed\"], got %q", lowered.State["status"].Type)
	}
	if lowered.State["detail"].Type != "Object{name:String,score:Integer}" {
		t.Errorf("unexpected Object type string: %q", lowered.State["detail"].Type)
	}
}
