package pkgbuild

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Supervisor is the Job Supervisor (C14): it fans a batch of tasks out
// across goroutines that all run on the same Orchestrator, sharing its
// runtime connection, image-state cache, and cancellation handle, and
// collects every result regardless of individual failures.
type Supervisor struct {
	orch  *Orchestrator
	quiet bool
}

// NewSupervisor returns a Supervisor that runs every task against orch.
// quiet is stored on the Supervisor but Run does not read it; logging is
// the same either way.
func NewSupervisor(orch *Orchestrator, quiet bool) *Supervisor {
	return &Supervisor{orch: orch, quiet: quiet}
}

// Run executes every task concurrently and returns one Result per task,
// in the same order tasks was given. A cancelled run still returns a
// Result for every task that had already started; tasks that never got
// a chance to start report [ErrCancelled].
//
// Run's own error is always nil: every failure, a context cancellation
// included, is reported only through the affected task's Result.Err.
func (s *Supervisor) Run(ctx context.Context, tasks []Task) ([]Result, error) {
	results := make([]Result, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = s.orch.Run(gctx, task)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

// Failed reports whether any result in results carries an error, the
// signal the CLI uses to pick a nonzero exit code.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
