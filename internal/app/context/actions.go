package context

import (
	"context"
	"fmt"
)

// Action is a staged write with a compensating rollback.
type Action interface {
	Execute(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Description names the action in errors and logs.
	Description() string
}

// AddAction stages action. Staging after Commit fails.
func (rc *RequestContext) AddAction(action Action) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	rc.actions = append(rc.actions, action)

	return nil
}

// Commit executes the staged actions in order. When one fails, the actions
// that already ran are rolled back newest first and a *CommitError is
// returned. A RequestContext commits at most once.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	rc.committed = true

	for i, action := range rc.actions {
		err := action.Execute(ctx)
		if err == nil {
			continue
		}

		commitErr := &CommitError{Action: action.Description(), Err: err}

		for j := i - 1; j >= 0; j-- {
			if rbErr := rc.actions[j].Rollback(ctx); rbErr != nil {
				commitErr.RollbackErrs = append(commitErr.RollbackErrs,
					fmt.Errorf("%s: %w", rc.actions[j].Description(), rbErr))
			}
		}

		return commitErr
	}

	return nil
}

// Actions returns a copy of the staged actions.
func (rc *RequestContext) Actions() []Action {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return append([]Action(nil), rc.actions...)
}
