package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/flashcards-api/config"
	"github.com/andrewpaige1/flashcards-api/models"
	"github.com/andrewpaige1/flashcards-api/store"
)

func newFactory(t *testing.T) store.GormFactory {
	t.Helper()
	db, err := config.OpenDatabase("sqlite", "file::memory:")
	require.NoError(t, err)
	return store.GormFactory{DB: db}
}

func handle(t *testing.T, f store.Factory, owner string) store.Store {
	t.Helper()
	st, err := f.For(store.Principal{ID: owner})
	require.NoError(t, err)
	return st
}

func insert(t *testing.T, st store.Store, owner, question string) models.Flashcard {
	t.Helper()
	card := models.Flashcard{UserID: owner, Question: question, Answer: "answer"}
	require.NoError(t, st.Insert(context.Background(), &card))
	return card
}

func TestGormStore_InsertPopulatesDefaults(t *testing.T) {
	st := handle(t, newFactory(t), "alice")

	card := insert(t, st, "alice", "What is Go?")

	assert.NotZero(t, card.ID)
	assert.Equal(t, "new", card.State)
	assert.False(t, card.CreatedAt.IsZero())
}

func TestGormStore_InsertForSomeoneElseViolatesPolicy(t *testing.T) {
	st := handle(t, newFactory(t), "alice")

	card := models.Flashcard{UserID: "bob", Question: "Q", Answer: "A"}
	err := st.Insert(context.Background(), &card)

	assert.ErrorIs(t, err, store.ErrPolicyViolation)
}

func TestGormStore_ReadsAreScopedToPrincipal(t *testing.T) {
	f := newFactory(t)
	alice := handle(t, f, "alice")
	bob := handle(t, f, "bob")
	ctx := context.Background()

	insert(t, alice, "alice", "a1")
	insert(t, alice, "alice", "a2")
	insert(t, bob, "bob", "b1")

	n, err := alice.Count(ctx, store.Filter{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Filtering for another owner's rows yields nothing under the policy
	n, err = alice.Count(ctx, store.Filter{OwnerID: "bob"})
	require.NoError(t, err)
	assert.Zero(t, n)

	rows, err := alice.Find(ctx, store.Query{Filter: store.Filter{OwnerID: "alice"}, From: 0, To: -1})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGormStore_FindRangeAndProjection(t *testing.T) {
	st := handle(t, newFactory(t), "alice")
	for _, q := range []string{"q0", "q1", "q2", "q3"} {
		insert(t, st, "alice", q)
	}

	rows, err := st.Find(context.Background(), store.Query{
		Filter:  store.Filter{OwnerID: "alice"},
		Columns: []string{"id", "question"},
		From:    1,
		To:      2,
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "q1", rows[0].Question)
	assert.Equal(t, "q2", rows[1].Question)
	assert.Empty(t, rows[0].Answer)

	rows, err = st.Find(context.Background(), store.Query{Filter: store.Filter{OwnerID: "alice"}, From: 10, To: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGormStore_Delete(t *testing.T) {
	f := newFactory(t)
	alice := handle(t, f, "alice")
	bob := handle(t, f, "bob")
	ctx := context.Background()

	mine := insert(t, alice, "alice", "mine")
	theirs := insert(t, bob, "bob", "theirs")

	err := alice.Delete(ctx, store.Filter{ID: theirs.ID})
	require.ErrorIs(t, err, store.ErrPolicyViolation)
	assert.Contains(t, err.Error(), "violates row-level security policy")

	n, err := bob.Count(ctx, store.Filter{OwnerID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "foreign row must survive")

	require.NoError(t, alice.Delete(ctx, store.Filter{ID: mine.ID}))
	assert.ErrorIs(t, alice.Delete(ctx, store.Filter{ID: mine.ID}), store.ErrNoRows)
}

func TestGormFactory_RequiresPrincipal(t *testing.T) {
	_, err := newFactory(t).For(store.Principal{})
	assert.Error(t, err)
}
