package tasktree

import (
	"errors"

	"github.com/google/uuid"
)

const Namespace = "tasktree"

var (
	ErrNilComputation  = errors.New(Namespace + ": nil computation")
	ErrInvalidConfig   = errors.New(Namespace + ": invalid configuration")
	ErrBranchPanicked  = errors.New(Namespace + ": branch panicked")
	ErrShutdownTimeout = errors.New(Namespace + ": root drain timed out")
)

// BranchError correlates a failure with the branch that raised it. The first
// failing branch tags the error; it keeps that tag while propagating through
// ancestor frames.
type BranchError struct {
	id  uuid.UUID
	err error
}

func tagBranch(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	var be *BranchError
	if errors.As(err, &be) {
		return err
	}
	return &BranchError{id: id, err: err}
}

func (e *BranchError) Error() string { return e.err.Error() }

func (e *BranchError) Unwrap() error { return e.err }

// Branch returns the id of the branch that raised the error.
func (e *BranchError) Branch() uuid.UUID { return e.id }

// ExtractBranchID returns the id of the failing branch if err carries one.
func ExtractBranchID(err error) (uuid.UUID, bool) {
	var be *BranchError
	if errors.As(err, &be) {
		return be.id, true
	}
	return uuid.UUID{}, false
}
