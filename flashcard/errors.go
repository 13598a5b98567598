package flashcard

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when there is no card to sample or delete.
var ErrNotFound = errors.New("no flashcards found")

// PersistenceError wraps a store failure. Its message is the store's message
// unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

const policyViolationSignature = "violates row-level security policy"

// IsPolicyViolation reports whether the store refused the operation because
// of its row-level policy.
func IsPolicyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), policyViolationSignature)
}
