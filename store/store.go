// Package store is the query backend for the flashcards table. Every handle
// is bound to one principal and the backend decides which rows that
// principal may touch.
package store

import (
	"context"
	"errors"

	"github.com/andrewpaige1/flashcards-api/models"
)

const Table = "flashcards"

// PolicyViolationMessage is the signature returned when the row-level policy
// rejects an operation.
const PolicyViolationMessage = `new row violates row-level security policy for table "flashcards"`

var (
	ErrNoRows          = errors.New("no rows matched the filter")
	ErrPolicyViolation = errors.New(PolicyViolationMessage)
)

// Filter holds equality filters. Zero values are not applied.
type Filter struct {
	ID      int64
	OwnerID string
}

// Query selects Columns of the rows matching Filter within the inclusive
// zero-based row range [From, To]. A To below From selects every row.
type Query struct {
	Filter  Filter
	Columns []string
	From    int
	To      int
}

// Store is the set of operations the access layer needs from the backend.
type Store interface {
	Insert(ctx context.Context, card *models.Flashcard) error
	Find(ctx context.Context, q Query) ([]models.Flashcard, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Delete(ctx context.Context, f Filter) error
}

// Principal is the authenticated caller a store handle acts for.
type Principal struct {
	ID    string
	Token string
}

// Factory hands out principal-bound store handles.
type Factory interface {
	For(p Principal) (Store, error)
}
