package engine

import (
	"context"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

// Executor is the abstract unit of work the scheduler drives, one per step
// of a task's pipeline. Name is an explicit field/method rather than a
// reflected symbol (see Design Note on per-executor naming by introspection):
// systems-language ports should not rely on runtime reflection to recover a
// function's name.
type Executor interface {
	// Name is the key under which this executor's output and status land
	// in the journal.
	Name() string

	// Run processes one task. patch is stored at key Name() in the updated
	// journal entry; updated indicates real work was performed and the
	// scheduler should stamp "<Name()>_last_run".
	//
	// Recoverable failures must be returned as *RecoverableError. Timeouts,
	// cancellations and transport errors are also recorded as recoverable
	// (see classify); any other error is fatal to the whole Execute call.
	Run(ctx context.Context, rc *RunContext, key string, status journal.StatusData) (patch any, updated bool, err error)
}

// funcExecutor adapts a plain function into the Executor interface.
type funcExecutor struct {
	name string
	fn   func(ctx context.Context, rc *RunContext, key string, status journal.StatusData) (any, bool, error)
}

func (f *funcExecutor) Name() string { return f.name }

func (f *funcExecutor) Run(ctx context.Context, rc *RunContext, key string, status journal.StatusData) (any, bool, error) {
	return f.fn(ctx, rc, key, status)
}

// NewExecutor builds an Executor from a plain function, for callers that
// don't need a dedicated struct type.
func NewExecutor(name string, fn func(ctx context.Context, rc *RunContext, key string, status journal.StatusData) (any, bool, error)) Executor {
	return &funcExecutor{name: name, fn: fn}
}

// Taskify adapts the natural per-executor shape (one that only knows how to
// compute its own patch, and raises on failure) into the uniform Executor
// contract: it always reports updated=true on success and namespaces the
// patch under name, exactly the convenience wrapper called for in the
// design's Executor Contract section.
func Taskify(name string, fn func(ctx context.Context, rc *RunContext, key string, status journal.StatusData) (any, error)) Executor {
	return NewExecutor(name, func(ctx context.Context, rc *RunContext, key string, status journal.StatusData) (any, bool, error) {
		patch, err := fn(ctx, rc, key, status)
		if err != nil {
			return nil, false, err
		}
		return patch, true, nil
	})
}
