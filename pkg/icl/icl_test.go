package icl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContract = `Contract {
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

func TestParse_ReturnsTokenStream(t *testing.T) {
	tokens, errs := Parse(sampleContract)
	assert.Empty(t, errs)
	assert.NotEmpty(t, tokens)
}

func TestParseContract_ValidSource(t *testing.T) {
	contract, err := ParseContract(sampleContract)
	require.Nil(t, err)
	assert.Equal(t, "order-fulfillment", contract.Identity.StableID)
}

func TestParseContract_InvalidSourceReturnsError(t *testing.T) {
	contract, err := ParseContract("Contract { not valid")
	assert.Nil(t, contract)
	require.NotNil(t, err)
	assert.Equal(t, "parse_error", string(err.Kind))
}

func TestNormalize_ProducesCanonicalTextWithHash(t *testing.T) {
	text, err := Normalize(sampleContract)
	require.Nil(t, err)
	assert.Contains(t, text, "semantic_hash")
	assert.NotContains(t, text, "0000000000000000000000000000000000000000000000000000000000000000")
}

func TestComputeSemanticHash_Deterministic(t *testing.T) {
	contract, err := ParseContract(sampleContract)
	require.Nil(t, err)

	hashA := ComputeSemanticHash(contract)
	hashB := ComputeSemanticHash(contract)
	assert.Equal(t, hashA, hashB)
	assert.Len(t, hashA, 64)
}

func TestVerify_ValidContractPasses(t *testing.T) {
	contract, err := ParseContract(sampleContract)
	require.Nil(t, err)

	result := Verify(contract)
	assert.True(t, result.IsValid(), "unexpected diagnostics: %+v", result.Diagnostics)
}

func TestLowerAndExecuteContract_RunsOperation(t *testing.T) {
	contract, err := ParseContract(sampleContract)
	require.Nil(t, err)

	lowered := Lower(contract)
	out, execErr := ExecuteContract(lowered, []byte(`{"operation": "mark_shipped", "inputs": {"tracking_number": "1Z999"}}`))
	require.Nil(t, execErr)
	assert.Contains(t, out, `"success": true`)
}

func TestNewExecutor_RunsOperationsIncrementally(t *testing.T) {
	contract, err := ParseContract(sampleContract)
	require.Nil(t, err)

	exec := NewExecutor(Lower(contract))
	res, execErr := exec.ExecuteOperation("mark_shipped", []byte(`{"tracking_number": "1Z999"}`))
	require.Nil(t, execErr)
	assert.True(t, res.Success)
}

func TestMarshalVerificationResult_ProducesJSON(t *testing.T) {
	contract, err := ParseContract(sampleContract)
	require.Nil(t, err)

	result := Verify(contract)
	data, marshalErr := MarshalVerificationResult(result)
	require.NoError(t, marshalErr)
	assert.Contains(t, string(data), "Diagnostics")
}
