package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
)

// RecoverableError is how user executor code signals a recoverable failure:
// the scheduler records it into the journal as "ERROR RuntimeError::<message>"
// and moves on to the next task, never the next executor of this task.
type RecoverableError struct {
	Message string
}

func (e *RecoverableError) Error() string { return e.Message }

// Recoverable wraps msg (optionally formatted) as a *RecoverableError.
func Recoverable(format string, args ...any) error {
	return &RecoverableError{Message: fmt.Sprintf(format, args...)}
}

// classifiedError is the "<kind>::<message>" pair stored in an executor's
// status string on failure.
type classifiedError struct {
	kind    string
	message string
}

func (c classifiedError) String() string {
	return fmt.Sprintf("ERROR %s::%s", c.kind, c.message)
}

// classify turns a non-nil error returned from an Executor.Run call (or
// from the per-task timeout/cancellation machinery) into the error taxonomy
// from the design's error handling section. fatal is true when the error
// must propagate out of Execute instead of being recorded for this task.
func classify(err error) (classified classifiedError, fatal bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return classifiedError{kind: "TimeoutError", message: err.Error()}, false

	case errors.Is(err, context.Canceled):
		return classifiedError{kind: "CancelledError", message: err.Error()}, false

	default:
		var recErr *RecoverableError
		if errors.As(err, &recErr) {
			return classifiedError{kind: "RuntimeError", message: recErr.Message}, false
		}

		var netErr net.Error
		if errors.As(err, &netErr) {
			if netErr.Timeout() {
				return classifiedError{kind: "TimeoutError", message: err.Error()}, false
			}
			return classifiedError{kind: "RuntimeError", message: err.Error()}, false
		}

		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return classifiedError{kind: "RuntimeError", message: err.Error()}, false
		}

		if errors.Is(err, io.ErrUnexpectedEOF) {
			return classifiedError{kind: "RuntimeError", message: err.Error()}, false
		}

		// Anything else is fatal: programming errors, missing mandatory
		// params, a corrupt journal encountered outside Scan's tolerant
		// path. Propagate unclassified.
		return classifiedError{}, true
	}
}
