package bench

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Query is one named benchmark statement.
type Query struct {
	Name string
	SQL  string
}

// Runner executes a benchmark suite strictly sequentially. Trials must not
// overlap: concurrent instrumented queries would contaminate each other's
// buffer-hit counters.
type Runner struct {
	exec    *Executor
	out     io.Writer
	timeout time.Duration
}

// NewRunner wires a runner to a connection. Progress and failures are written
// to out. A non-zero timeout bounds each individual trial; a timed-out trial
// counts as a failure and the suite continues.
func NewRunner(db DB, out io.Writer, timeout time.Duration) *Runner {
	return &Runner{exec: NewExecutor(db), out: out, timeout: timeout}
}

// RunSuite runs every query in input order, iterations trials each, and
// returns the successful records. A failed trial is reported and skipped; it
// never aborts the suite. The returned error is non-nil only for suite-level
// faults (invalid arguments, cancellation).
func (r *Runner) RunSuite(ctx context.Context, queries []Query, iterations int) ([]MeasurementRecord, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	fmt.Fprintf(r.out, "Running benchmark suite (%d queries, %d iterations each, %d total tests)\n\n",
		len(queries), iterations, len(queries)*iterations)

	records := make([]MeasurementRecord, 0, len(queries)*iterations)

	for idx, q := range queries {
		fmt.Fprintf(r.out, "[%d/%d] %s\n", idx+1, len(queries), q.Name)

		for iter := 1; iter <= iterations; iter++ {
			if err := ctx.Err(); err != nil {
				return records, err
			}

			rec, err := r.runTrial(ctx, q)
			if err != nil {
				fmt.Fprintf(r.out, "    Iteration %d: FAILED: %v\n", iter, err)
				continue
			}

			rec.Iteration = iter
			records = append(records, *rec)
			fmt.Fprintf(r.out, "    Iteration %d: %.2fms (exec: %.2fms, plan: %.2fms)\n",
				iter, rec.TotalTimeMs, rec.ExecutionTimeMs, rec.PlanningTimeMs)
		}

		fmt.Fprintln(r.out)
	}

	return records, nil
}

func (r *Runner) runTrial(ctx context.Context, q Query) (*MeasurementRecord, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.exec.ExecuteInstrumented(ctx, q.Name, q.SQL)
}
