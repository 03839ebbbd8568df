package parser

import (
	"testing"

	"github.com/icl-lang/icl/internal/ast"
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
    narrative: "Tracks an order from placement through shipment.",
    intent_source: "product requirements doc v3",
    confidence_level: 0.9,
  }
  DataSemantics {
    state: {
      status: String = "pending",
      retries: Integer = 0,
    },
    invariants: ["status is never empty"],
  }
  BehavioralSemantics {
    operations: [
      {
        name: "mark_shipped",
        precondition: "status equals pending",
        parameters: {
          tracking_number: String,
        },
        postcondition: "status equals shipped",
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
    external_permissions: [],
    sandbox_mode: "restricted",
  }
  HumanMachineContract {
    system_commitments: ["will not ship twice"],
    system_refusals: ["will not ship without tracking number"],
    user_obligations: ["must supply a valid tracking number"],
  }
}
`

func TestParseSource_ValidContract(t *testing.T) {
	contract, err := ParseSource(validContractSource)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if contract.Identity.StableID != "order-fulfillment" {
		t.Errorf("expected stable_id order-fulfillment, got %q", contract.Identity.StableID)
	}
	if len(contract.DataSemantics.State) != 2 {
		t.Fatalf("expected 2 state fields, got %d", len(contract.DataSemantics.State))
	}
	if contract.DataSemantics.State[0].Name != "status" {
		t.Errorf("expected first state field status, got %q", contract.DataSemantics.State[0].Name)
	}
	if _, ok := contract.DataSemantics.State[0].Type.(*ast.PrimitiveType); !ok {
		t.Errorf("expected status to be a primitive type")
	}
	if len(contract.BehavioralSemantics.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(contract.BehavioralSemantics.Operations))
	}
	op := contract.BehavioralSemantics.Operations[0]
	if op.Name != "mark_shipped" {
		t.Errorf("expected operation name mark_shipped, got %q", op.Name)
	}
	if len(op.Parameters) != 1 || op.Parameters[0].Name != "tracking_number" {
		t.Errorf("unexpected operation parameters: %+v", op.Parameters)
	}
	if contract.ExecutionConstraints.SandboxMode != "restricted" {
		t.Errorf("expected sandbox_mode restricted, got %q", contract.ExecutionConstraints.SandboxMode)
	}
}

func TestParseSource_MissingRequiredField(t *testing.T) {
	src := `Contract {
  Identity {
    stable_id: "x",
    version: 1,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "team",
  }
}`
	_, err := ParseSource(src)
	if err == nil {
		t.Fatal("expected parse error for missing semantic_hash")
	}
}

func TestParseSource_DuplicateField(t *testing.T) {
	src := `Contract {
  Identity {
    stable_id: "x",
    stable_id: "y",
    version: 1,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "team",
    semantic_hash: "0000000000000000000000000000000000000000000000000000000000000000",
  }
}`
	_, err := ParseSource(src)
	if err == nil {
		t.Fatal("expected parse error for duplicate stable_id field")
	}
}

func TestParseSource_ConfidenceLevelOutOfRange(t *testing.T) {
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
    confidence_level: 1.5,
  }
}`
	_, err := ParseSource(src)
	if err == nil {
		t.Fatal("expected validation error for out-of-range confidence_level")
	}
	if err.Kind != ErrValidation {
		t.Errorf("expected ErrValidation, got %v", err.Kind)
	}
}

func TestParseSource_UnexpectedTrailingContent(t *testing.T) {
	_, err := ParseSource(validContractSource + "garbage")
	if err == nil {
		t.Fatal("expected parse error for trailing content")
	}
}

func TestParseSource_UnknownFieldName(t *testing.T) {
	src := `Contract {
  Identity {
    stable_id: "x",
    version: 1,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "team",
    semantic_hash: "0000000000000000000000000000000000000000000000000000000000000000",
    bogus_field: "oops",
  }
}`
	_, err := ParseSource(src)
	if err == nil {
		t.Fatal("expected parse error for unknown field")
	}
}

func TestParseSource_ArrayAndMapTypes(t *testing.T) {
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
	contract, err := ParseSource(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, ok := contract.DataSemantics.State[0].Type.(*ast.ArrayType); !ok {
		t.Errorf("expected tags field to be an array type")
	}
	if _, ok := contract.DataSemantics.State[1].Type.(*ast.MapType); !ok {
		t.Errorf("expected counts field to be a map type")
	}
}

func TestParseSource_LexicalErrorPropagates(t *testing.T) {
	_, err := ParseSource(`Contract { #`)
	if err == nil {
		t.Fatal("expected lexical error to surface as a parse error")
	}
	if err.Kind != ErrSyntax {
		t.Errorf("expected ErrSyntax for lexical errors, got %v", err.Kind)
	}
}
