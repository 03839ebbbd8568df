package canonical

import (
	"strings"
	"testing"

	"github.com/icl-lang/icl/internal/parser"
)

const unsortedContractSource = `Contract {
  Identity {
    stable_id: "z-contract",
    version: 1,
    created_timestamp: "2024-01-15T10:30:00Z",
    owner: "team",
    semantic_hash: "1111111111111111111111111111111111111111111111111111111111111111",
  }
  PurposeStatement {
    narrative: "n",
    intent_source: "s",
    confidence_level: 0.5,
  }
  DataSemantics {
    state: {
      zeta: Integer = 0,
      alpha: String = "a",
    },
    invariants: ["zeta is never negative", "alpha is never empty"],
  }
  BehavioralSemantics {
    operations: [
      {
        name: "zzz_op",
        precondition: "true",
        parameters: {},
        postcondition: "true",
        side_effects: ["b_effect", "a_effect"],
        idempotence: "idempotent",
      },
      {
        name: "aaa_op",
        precondition: "true",
        parameters: {},
        postcondition: "true",
        side_effects: [],
        idempotence: "idempotent",
      }
    ],
  }
  ExecutionConstraints {
    trigger_types: ["manual", "api"],
    resource_limits: {
      max_memory_bytes: 1,
      computation_timeout_ms: 1,
      max_state_size_bytes: 1,
    },
    external_permissions: ["write", "read"],
    sandbox_mode: "none",
  }
  HumanMachineContract {
    system_commitments: ["z", "a"],
    system_refusals: ["z", "a"],
    user_obligations: ["z", "a"],
  }
}`

func TestNormalize_SortsListsAndOperations(t *testing.T) {
	text, err := Normalize(unsortedContractSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	aaaIdx := strings.Index(text, `"aaa_op"`)
	zzzIdx := strings.Index(text, `"zzz_op"`)
	if aaaIdx == -1 || zzzIdx == -1 {
		t.Fatalf("expected both operations present in output:\n%s", text)
	}
	if aaaIdx > zzzIdx {
		t.Errorf("expected aaa_op to sort before zzz_op")
	}

	alphaIdx := strings.Index(text, "alpha: String")
	zetaIdx := strings.Index(text, "zeta: Integer")
	if alphaIdx == -1 || zetaIdx == -1 || alphaIdx > zetaIdx {
		t.Errorf("expected state field alpha to sort before zeta")
	}
}

func TestNormalize_IsIdempotent(t *testing.T) {
	first, err := Normalize(unsortedContractSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Normalize(first)
	if err != nil {
		t.Fatalf("unexpected error normalizing already-canonical text: %v", err)
	}
	if first != second {
		t.Errorf("expected normalization to be idempotent\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestComputeSemanticHash_StableUnderFieldReordering(t *testing.T) {
	hashA := ComputeSemanticHashFromSource(t, unsortedContractSource)

	reordered := strings.Replace(unsortedContractSource,
		`zeta: Integer = 0,
      alpha: String = "a",`,
		`alpha: String = "a",
      zeta: Integer = 0,`, 1)
	hashB := ComputeSemanticHashFromSource(t, reordered)

	if hashA != hashB {
		t.Errorf("expected semantic hash to be stable under field reordering, got %s vs %s", hashA, hashB)
	}
}

func TestComputeSemanticHash_Is64HexChars(t *testing.T) {
	hash := ComputeSemanticHashFromSource(t, unsortedContractSource)
	if len(hash) != 64 {
		t.Errorf("expected 64-character hash, got %d: %s", len(hash), hash)
	}
	for _, c := range hash {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("hash contains non-hex character: %q", hash)
		}
	}
}

func TestComputeSemanticHash_ChangesWithContent(t *testing.T) {
	hashA := ComputeSemanticHashFromSource(t, unsortedContractSource)
	changed := strings.Replace(unsortedContractSource, `"zeta is never negative"`, `"zeta is always positive"`, 1)
	hashB := ComputeSemanticHashFromSource(t, changed)
	if hashA == hashB {
		t.Error("expected semantic hash to change when invariant text changes")
	}
}

func ComputeSemanticHashFromSource(t *testing.T, src string) string {
	t.Helper()
	contract, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return ComputeSemanticHash(contract)
}

func TestNormalize_PropagatesParseError(t *testing.T) {
	_, err := Normalize("Contract { not valid")
	if err == nil {
		t.Fatal("expected parse error to propagate")
	}
}
