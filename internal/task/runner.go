package task

import (
	"log/slog"
	"sync"
)

// Runner executes one unit of work per user-initiated action off the
// interactive thread. At most one unit is in flight at a time; while a unit
// is outstanding the triggering control stays disabled and further submits
// are rejected. Each unit reports a single terminal success or error to its
// done callback. No retries.
type Runner struct {
	mu     sync.Mutex
	busy   bool
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewRunner creates an idle runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Go submits a unit of work. It returns false without running anything when
// a unit is already in flight. done, if non-nil, receives the unit's
// terminal error (nil on success) after the busy flag clears.
func (r *Runner) Go(name string, work func() error, done func(error)) bool {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return false
	}
	r.busy = true
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		err := work()

		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()

		if err != nil {
			r.logger.Info("unit of work failed",
				slog.String("action", name),
				slog.String("error", err.Error()),
			)
		}
		if done != nil {
			done(err)
		}
	}()
	return true
}

// Busy reports whether a unit is in flight.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Wait blocks until the in-flight unit, if any, has reported its result.
func (r *Runner) Wait() {
	r.wg.Wait()
}
