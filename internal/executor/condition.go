package executor

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reIsNotEmpty = regexp.MustCompile(`^(\S+) is not empty$`)
	reGE         = regexp.MustCompile(`^(\S+) >= (-?\d+(?:\.\d+)?)$`)
	reLE         = regexp.MustCompile(`^(\S+) <= (-?\d+(?:\.\d+)?)$`)
	reGT         = regexp.MustCompile(`^(\S+) > (-?\d+(?:\.\d+)?)$`)
	reLT         = regexp.MustCompile(`^(\S+) < (-?\d+(?:\.\d+)?)$`)
	reIsBoolean  = regexp.MustCompile(`^(\S+) is boolean$`)
)

// Evaluate attempts to reduce a natural-language condition string to a
// boolean against state. It recognizes a narrow set of patterns; anything
// else is opaque and reported as non-evaluable (advisory, treated as
// passing). The (result, evaluable) pair is intentional: callers must never
// treat a non-evaluable condition as a failure.
func Evaluate(state ExecutionState, condition string) (result bool, evaluable bool) {
	cond := strings.TrimSpace(condition)

	if m := reIsNotEmpty.FindStringSubmatch(cond); m != nil {
		v, ok := state[m[1]]
		if !ok {
			return false, true
		}
		return isTruthy(v), true
	}
	if m := reGE.FindStringSubmatch(cond); m != nil {
		return numericCompare(state, m[1], m[2], ">=")
	}
	if m := reLE.FindStringSubmatch(cond); m != nil {
		return numericCompare(state, m[1], m[2], "<=")
	}
	if m := reGT.FindStringSubmatch(cond); m != nil {
		return numericCompare(state, m[1], m[2], ">")
	}
	if m := reLT.FindStringSubmatch(cond); m != nil {
		return numericCompare(state, m[1], m[2], "<")
	}
	if m := reIsBoolean.FindStringSubmatch(cond); m != nil {
		v, ok := state[m[1]]
		return ok && v.Kind == ValueBoolean, true
	}
	if strings.Contains(cond, "is valid ") {
		return true, false
	}
	return true, false
}

func numericCompare(state ExecutionState, field, numLiteral, op string) (bool, bool) {
	v, ok := state[field]
	if !ok {
		return false, true
	}
	var fv float64
	switch v.Kind {
	case ValueInteger:
		fv = float64(v.Int)
	case ValueFloat:
		fv = v.Float
	default:
		return false, true
	}
	num, err := strconv.ParseFloat(numLiteral, 64)
	if err != nil {
		return false, true
	}
	switch op {
	case ">=":
		return fv >= num, true
	case "<=":
		return fv <= num, true
	case ">":
		return fv > num, true
	case "<":
		return fv < num, true
	default:
		return false, true
	}
}

// CheckInvariants returns the subset of invariants that evaluated to false
// under their recognized pattern; opaque invariants are excluded.
func CheckInvariants(state ExecutionState, invariants []string) []string {
	var failed []string
	for _, inv := range invariants {
		if result, evaluable := Evaluate(state, inv); evaluable && !result {
			failed = append(failed, inv)
		}
	}
	return failed
}
