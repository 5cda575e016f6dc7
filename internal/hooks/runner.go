package hooks

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// FaultError is a hook failure: a returned error or a recovered panic.
type FaultError struct {
	Hook string
	Err  error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("hook %s: %v", e.Hook, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// Runner executes hooks in load order, isolating each from the others.
type Runner struct {
	hooks  []Hook
	faults map[string]int
	logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(logger *log.Logger, hooks ...Hook) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		hooks:  hooks,
		faults: make(map[string]int),
		logger: logger,
	}
}

// Add appends a hook.
func (r *Runner) Add(h Hook) {
	r.hooks = append(r.hooks, h)
}

// Len returns the number of hooks.
func (r *Runner) Len() int {
	return len(r.hooks)
}

// Names returns hook names in execution order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.hooks))
	for i, h := range r.hooks {
		names[i] = h.Name()
	}
	return names
}

// ExecuteAll runs every hook once. A failing hook is logged and counted; the
// remaining hooks still run. The faults of this pass are returned.
func (r *Runner) ExecuteAll(ctx Context) []error {
	var faults []error
	for _, h := range r.hooks {
		if err := r.run(h, ctx); err != nil {
			r.faults[h.Name()]++
			r.logger.Error("hook failed", "hook", h.Name(), "err", err.Err)
			faults = append(faults, err)
		}
	}
	return faults
}

// Faults returns the number of failures per hook name.
func (r *Runner) Faults() map[string]int {
	out := make(map[string]int, len(r.faults))
	for k, v := range r.faults {
		out[k] = v
	}
	return out
}

func (r *Runner) run(h Hook, ctx Context) (fault *FaultError) {
	defer func() {
		if rec := recover(); rec != nil {
			fault = &FaultError{Hook: h.Name(), Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	if err := h.Run(scoped{Context: ctx, name: h.Name()}); err != nil {
		return &FaultError{Hook: h.Name(), Err: err}
	}
	return nil
}

// scoped tags log lines with the hook name.
type scoped struct {
	Context
	name string
}

func (s scoped) Log(msg string, keyvals ...any) {
	s.Context.Log(msg, append([]any{"hook", s.name}, keyvals...)...)
}
