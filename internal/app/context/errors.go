package context

import (
	"errors"
	"fmt"
)

// ErrAlreadyCommitted is returned when trying to add actions or commit
// after the RequestContext has already been committed.
var ErrAlreadyCommitted = errors.New("request context already committed")

// CommitError reports the action that failed and any rollback that failed
// after it. Unwrap yields the action's error, so errors.Is sees the cause.
type CommitError struct {
	Action       string
	Err          error
	RollbackErrs []error
}

func (e *CommitError) Error() string {
	msg := fmt.Sprintf("action %q failed: %v", e.Action, e.Err)
	if n := len(e.RollbackErrs); n > 0 {
		msg += fmt.Sprintf(" (%d rollback(s) also failed: %v)", n, errors.Join(e.RollbackErrs...))
	}

	return msg
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
