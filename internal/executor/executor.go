// Package executor runs named operations declared by a contract against an
// in-memory ExecutionState, under sandbox resource limits, appending an
// append-only provenance log. Every operation is atomic: on any failure the
// state is rolled back to the snapshot taken at the start of the call.
package executor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/icl-lang/icl/internal/ast"
	"github.com/icl-lang/icl/internal/iclerrors"
	"github.com/icl-lang/icl/internal/lowering"
)

// ExecutionState is a mapping from field name to Value, owned exclusively
// by its Executor.
type ExecutionState map[string]Value

func cloneState(s ExecutionState) ExecutionState {
	out := make(ExecutionState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Executor owns one contract's state and provenance log. It is not
// thread-safe: callers running multiple executors concurrently must give
// each its own goroutine.
type Executor struct {
	contract *lowering.Contract
	state    ExecutionState
	sandbox  Sandbox
	log      ProvenanceLog
	sequence int
	now      func() time.Time
}

// New constructs an Executor from a lowered Contract, building initial
// state from DataSemantics defaults.
func New(contract *lowering.Contract) *Executor {
	return &Executor{
		contract: contract,
		state:    buildInitialState(contract),
		sandbox:  NewSandbox(contract.ExecutionConstraints),
		now:      time.Now,
	}
}

// State returns a snapshot of the executor's current state.
func (e *Executor) State() ExecutionState {
	return cloneState(e.state)
}

// Provenance returns the executor's accumulated provenance log.
func (e *Executor) Provenance() ProvenanceLog {
	return e.log
}

func buildInitialState(contract *lowering.Contract) ExecutionState {
	state := make(ExecutionState, len(contract.StateOrder))
	for _, name := range contract.StateOrder {
		state[name] = valueForSpec(contract.State[name])
	}
	return state
}

func valueForSpec(spec lowering.StateFieldSpec) Value {
	if spec.Default != nil {
		return valueFromLiteral(*spec.Default)
	}
	return zeroValueForType(spec.TypeExpr)
}

func zeroValueForType(t ast.TypeExpr) Value {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		switch v.Kind {
		case ast.KindInteger:
			return Value{Kind: ValueInteger, Int: 0}
		case ast.KindFloat:
			return Value{Kind: ValueFloat, Float: 0}
		case ast.KindString, ast.KindISO8601, ast.KindUUID:
			return Value{Kind: ValueString, Str: ""}
		case ast.KindBoolean:
			return Value{Kind: ValueBoolean, Bool: false}
		default:
			return Value{Kind: ValueNull}
		}
	case *ast.ObjectType:
		obj := make(map[string]Value, len(v.Fields))
		for _, f := range v.Fields {
			if f.Default != nil {
				obj[f.Name] = valueFromASTLiteral(*f.Default)
			} else {
				obj[f.Name] = zeroValueForType(f.Type)
			}
		}
		return Value{Kind: ValueObject, Object: obj}
	default:
		return Value{Kind: ValueNull}
	}
}

func valueFromASTLiteral(lit ast.LiteralValue) Value {
	switch lit.Kind {
	case ast.LitString:
		return Value{Kind: ValueString, Str: lit.Str}
	case ast.LitInteger:
		return Value{Kind: ValueInteger, Int: lit.Int}
	case ast.LitFloat:
		return Value{Kind: ValueFloat, Float: lit.Float}
	case ast.LitBoolean:
		return Value{Kind: ValueBoolean, Bool: lit.Bool}
	case ast.LitArray:
		arr := make([]Value, len(lit.Array))
		for i, elem := range lit.Array {
			arr[i] = valueFromASTLiteral(elem)
		}
		return Value{Kind: ValueArray, Array: arr}
	default:
		return Value{Kind: ValueNull}
	}
}

func valueFromLiteral(lit lowering.Literal) Value {
	switch lit.Kind {
	case ast.LitString:
		return Value{Kind: ValueString, Str: lit.Str}
	case ast.LitInteger:
		return Value{Kind: ValueInteger, Int: lit.Int}
	case ast.LitFloat:
		return Value{Kind: ValueFloat, Float: lit.Float}
	case ast.LitBoolean:
		return Value{Kind: ValueBoolean, Bool: lit.Bool}
	case ast.LitArray:
		arr := make([]Value, len(lit.Array))
		for i, elem := range lit.Array {
			arr[i] = valueFromLiteral(elem)
		}
		return Value{Kind: ValueArray, Array: arr}
	default:
		return Value{Kind: ValueNull}
	}
}

// Request is a single execution request: {"operation": name, "inputs": {…}}.
type Request struct {
	Operation string          `json:"operation"`
	Inputs    json.RawMessage `json:"inputs"`
}

// OperationResult is one entry of an ExecutionResult's Operations list.
type OperationResult struct {
	Operation   string           `json:"operation"`
	Success     bool             `json:"success"`
	State       ExecutionState   `json:"state,omitempty"`
	Error       string           `json:"error,omitempty"`
	Provenance  *ProvenanceEntry `json:"provenance,omitempty"`
}

// ExecutionResult is the top-level response of ExecuteAll.
type ExecutionResult struct {
	ContractID string            `json:"contract_id"`
	Success    bool              `json:"success"`
	Operations []OperationResult `json:"operations"`
	FinalState ExecutionState    `json:"final_state"`
	Provenance ProvenanceLog     `json:"provenance"`
	Error      *string           `json:"error"`
}

func (e *Executor) findOperation(name string) (*lowering.Operation, *iclerrors.Error) {
	for i := range e.contract.Operations {
		if e.contract.Operations[i].Name == name {
			return &e.contract.Operations[i], nil
		}
	}
	return nil, iclerrors.NewExecutionError(name, fmt.Sprintf("operation %q not found", name))
}

func decodeInputs(raw json.RawMessage) (map[string]Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]Value{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(m))
	for k, v := range m {
		out[k] = fromJSON(v)
	}
	return out, nil
}

// ExecuteOperation runs one named operation to completion or rolls back
// entirely, following the twelve-step atomic algorithm: locate, parse
// inputs, validate parameters, evaluate precondition, snapshot, apply,
// timeout check, postcondition check, invariant check, memory check,
// compute changes, append provenance.
func (e *Executor) ExecuteOperation(name string, inputsJSON json.RawMessage) (*OperationResult, *iclerrors.Error) {
	start := e.now()

	op, err := e.findOperation(name)
	if err != nil {
		return nil, err
	}

	if permErr := e.sandbox.checkPermissions(*op); permErr != nil {
		return nil, permErr
	}

	inputs, decodeErr := decodeInputs(inputsJSON)
	if decodeErr != nil {
		return nil, iclerrors.NewExecutionError(name, "invalid inputs: "+decodeErr.Error())
	}

	for _, paramName := range op.ParameterOrder {
		if _, ok := inputs[paramName]; !ok {
			return nil, iclerrors.NewExecutionError(name, fmt.Sprintf("missing required input %q", paramName))
		}
	}

	if result, evaluable := Evaluate(e.state, op.Precondition); evaluable && !result {
		return nil, iclerrors.NewExecutionError(name, "Precondition failed: "+op.Precondition)
	}

	snapshot := cloneState(e.state)

	for key, val := range inputs {
		e.state[key] = val
	}

	if e.sandbox.ComputationTimeoutMs > 0 {
		elapsedMs := uint64(e.now().Sub(start).Milliseconds())
		if elapsedMs > e.sandbox.ComputationTimeoutMs {
			e.state = snapshot
			return nil, iclerrors.NewExecutionError(name, "computation timeout exceeded")
		}
	}

	postconditionsVerified := true
	if result, evaluable := Evaluate(e.state, op.Postcondition); evaluable {
		postconditionsVerified = result
		if !result {
			e.state = snapshot
			return nil, iclerrors.NewContractViolation(name, fmt.Sprintf("postcondition of '%s'", name), op.Postcondition)
		}
	}

	invariantsVerified := true
	if failed := CheckInvariants(e.state, e.contract.Invariants); len(failed) > 0 {
		invariantsVerified = false
		e.state = snapshot
		violation := "Violated invariants: "
		for i, inv := range failed {
			if i > 0 {
				violation += "; "
			}
			violation += inv
		}
		return nil, iclerrors.NewContractViolation(name, "invariant", violation)
	}

	size := stateSize(e.state)
	limits := e.sandbox
	if size > limits.MaxStateSizeBytes || size > limits.MaxMemoryBytes {
		e.state = snapshot
		return nil, iclerrors.NewExecutionError(name, fmt.Sprintf("state size %d bytes exceeds limit", size))
	}

	changes := computeChanges(snapshot, e.state)

	entry := ProvenanceEntry{
		Sequence:               e.sequence,
		Operation:              name,
		Inputs:                 inputs,
		StateBefore:            snapshot,
		StateAfter:             cloneState(e.state),
		Changes:                changes,
		PostconditionsVerified: postconditionsVerified,
		InvariantsVerified:     invariantsVerified,
	}
	e.log.Entries = append(e.log.Entries, entry)
	e.sequence++

	return &OperationResult{Operation: name, Success: true, State: cloneState(e.state), Provenance: &entry}, nil
}

// ExecuteAll iterates requests in order, stopping and reporting failure at
// the first error while retaining every successful result before it.
func (e *Executor) ExecuteAll(requests []Request) *ExecutionResult {
	operations := make([]OperationResult, 0, len(requests))
	for _, req := range requests {
		res, err := e.ExecuteOperation(req.Operation, req.Inputs)
		if err != nil {
			operations = append(operations, OperationResult{Operation: req.Operation, Success: false, Error: err.Error()})
			msg := err.Error()
			return &ExecutionResult{
				ContractID: e.contract.Identity.StableID,
				Success:    false,
				Operations: operations,
				FinalState: cloneState(e.state),
				Provenance: e.log,
				Error:      &msg,
			}
		}
		operations = append(operations, *res)
	}
	return &ExecutionResult{
		ContractID: e.contract.Identity.StableID,
		Success:    true,
		Operations: operations,
		FinalState: cloneState(e.state),
		Provenance: e.log,
		Error:      nil,
	}
}

func stateSize(state ExecutionState) uint64 {
	var total uint64
	for k, v := range state {
		total += uint64(len(k)) + sizeOf(v)
	}
	return total
}

func computeChanges(before, after ExecutionState) []Change {
	keys := make(map[string]bool, len(before)+len(after))
	for k := range before {
		keys[k] = true
	}
	for k := range after {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var changes []Change
	for _, k := range sorted {
		b, bok := before[k]
		a, aok := after[k]
		if !aok {
			continue
		}
		if !bok {
			changes = append(changes, Change{Field: k, OldValue: Value{Kind: ValueNull}, NewValue: a})
			continue
		}
		if !valuesEqual(b, a) {
			changes = append(changes, Change{Field: k, OldValue: b, NewValue: a})
		}
	}
	return changes
}

// ParseRequests decodes an execution request body: either a single
// {"operation",...} object or a JSON array of such objects.
func ParseRequests(raw []byte) ([]Request, *iclerrors.Error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, iclerrors.NewExecutionError("", "empty request body")
	}
	if trimmed[0] == '[' {
		var reqs []Request
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, iclerrors.NewExecutionError("", "invalid request JSON: "+err.Error())
		}
		return reqs, nil
	}
	var req Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, iclerrors.NewExecutionError("", "invalid request JSON: "+err.Error())
	}
	return []Request{req}, nil
}

// ExecuteContract builds a fresh Executor from contract, runs every request
// in inputsJSON, and renders the result as pretty-printed JSON.
func ExecuteContract(contract *lowering.Contract, inputsJSON []byte) (string, *iclerrors.Error) {
	requests, err := ParseRequests(inputsJSON)
	if err != nil {
		return "", err
	}
	exec := New(contract)
	result := exec.ExecuteAll(requests)
	out, marshalErr := json.MarshalIndent(result, "", "  ")
	if marshalErr != nil {
		return "", iclerrors.NewExecutionError("", "failed to render execution result: "+marshalErr.Error())
	}
	return string(out), nil
}
