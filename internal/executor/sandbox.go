package executor

import (
	"fmt"

	"github.com/icl-lang/icl/internal/iclerrors"
	"github.com/icl-lang/icl/internal/lowering"
)

// Mode is the isolation mode under which operations run.
type Mode string

const (
	FullIsolation Mode = "full_isolation"
	Restricted    Mode = "restricted"
	NoIsolation   Mode = "none"
)

// Sandbox is the tuple of resource limits and isolation mode an Executor
// enforces. An operation's required permissions are its declared
// side_effects list — the data model has no separate permissions field per
// operation, so side effects double as the permission vocabulary.
type Sandbox struct {
	MaxMemoryBytes       uint64
	ComputationTimeoutMs uint64
	MaxStateSizeBytes    uint64
	Mode                 Mode
	Permissions          []string
}

// NewSandbox builds a Sandbox from a lowered ExecutionConstraints record.
func NewSandbox(ec lowering.ExecutionConstraints) Sandbox {
	mode := Mode(ec.SandboxMode)
	switch mode {
	case FullIsolation, Restricted, NoIsolation:
	default:
		mode = NoIsolation
	}
	return Sandbox{
		MaxMemoryBytes:       ec.ResourceLimits.MaxMemoryBytes,
		ComputationTimeoutMs: ec.ResourceLimits.ComputationTimeoutMs,
		MaxStateSizeBytes:    ec.ResourceLimits.MaxStateSizeBytes,
		Mode:                 mode,
		Permissions:          ec.ExternalPermissions,
	}
}

// checkPermissions enforces the sandbox's isolation mode against an
// operation's required permissions before it runs.
func (s Sandbox) checkPermissions(op lowering.Operation) *iclerrors.Error {
	switch s.Mode {
	case FullIsolation:
		if len(op.SideEffects) > 0 {
			return iclerrors.NewExecutionError(op.Name, "operation declares side effects but sandbox_mode is full_isolation")
		}
	case Restricted:
		granted := make(map[string]bool, len(s.Permissions))
		for _, p := range s.Permissions {
			granted[p] = true
		}
		for _, required := range op.SideEffects {
			if !granted[required] {
				return iclerrors.NewExecutionError(op.Name, fmt.Sprintf("permission %q not granted by external_permissions", required))
			}
		}
	case NoIsolation:
		// Advisory only.
	}
	return nil
}
