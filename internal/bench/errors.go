package bench

import "fmt"

// ExecutionError marks a single trial failure (bad SQL, missing relation,
// engine-side timeout). The suite runner contains it and moves on.
type ExecutionError struct {
	QueryName string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("running query %q: %v", e.QueryName, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// MalformedPlanError means the engine returned an EXPLAIN document the walker
// cannot make sense of, which violates the instrumented-mode contract. It is
// never swallowed.
type MalformedPlanError struct {
	QueryName string
	Err       error
}

func (e *MalformedPlanError) Error() string {
	return fmt.Sprintf("malformed plan for query %q: %v", e.QueryName, e.Err)
}

func (e *MalformedPlanError) Unwrap() error { return e.Err }
