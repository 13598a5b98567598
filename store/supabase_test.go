package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/flashcards-api/flashcard"
	"github.com/andrewpaige1/flashcards-api/models"
	"github.com/andrewpaige1/flashcards-api/store"
)

// postgrest records the requests it receives and answers them with reply.
type postgrest struct {
	mu       sync.Mutex
	requests []*http.Request
	reply    func(w http.ResponseWriter, r *http.Request)
}

func (p *postgrest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.requests = append(p.requests, r.Clone(context.Background()))
	reply := p.reply
	p.mu.Unlock()

	if r.URL.Path != "/rest/v1/"+store.Table {
		http.NotFound(w, r)
		return
	}
	reply(w, r)
}

func (p *postgrest) last(t *testing.T) *http.Request {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.requests)
	return p.requests[len(p.requests)-1]
}

func newSupabase(t *testing.T, reply func(w http.ResponseWriter, r *http.Request)) (store.Store, *postgrest) {
	t.Helper()
	pg := &postgrest{reply: reply}
	srv := httptest.NewServer(pg)
	t.Cleanup(srv.Close)

	st, err := store.SupabaseFactory{URL: srv.URL, AnonKey: "anon-key"}.
		For(store.Principal{ID: "owner-1", Token: "user-token"})
	require.NoError(t, err)
	return st, pg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestSupabaseFactory_RequiresToken(t *testing.T) {
	_, err := store.SupabaseFactory{URL: "http://localhost", AnonKey: "anon"}.For(store.Principal{ID: "owner-1"})
	assert.Error(t, err)
}

func TestSupabaseStore_FindSendsCallerTokenAndFilters(t *testing.T) {
	st, pg := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "question": "Q1", "answer": "A1", "state": "new"},
			{"id": 2, "question": "Q2", "answer": "A2", "state": "new"},
		})
	})

	rows, err := st.Find(context.Background(), store.Query{
		Filter:  store.Filter{OwnerID: "owner-1"},
		Columns: []string{"id", "question", "answer", "state"},
		From:    30,
		To:      59,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[1].ID)
	assert.Equal(t, "Q2", rows[1].Question)

	req := pg.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))
	assert.Equal(t, "anon-key", req.Header.Get("apikey"))

	q := req.URL.Query()
	assert.Equal(t, "eq.owner-1", q.Get("user_id"))
	assert.Equal(t, "id,question,answer,state", q.Get("select"))
	assert.Equal(t, "30", q.Get("offset"))
	assert.Equal(t, "30", q.Get("limit"))
}

func TestSupabaseStore_RangeNotSatisfiableIsEmpty(t *testing.T) {
	st, _ := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusRequestedRangeNotSatisfiable, map[string]string{
			"code":    "PGRST103",
			"message": "Requested range not satisfiable",
		})
	})

	rows, err := st.Find(context.Background(), store.Query{Filter: store.Filter{OwnerID: "owner-1"}, From: 90, To: 119})

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSupabaseStore_FindError(t *testing.T) {
	st, _ := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "42703",
			"message": "column flashcards.nope does not exist",
		})
	})

	_, err := st.Find(context.Background(), store.Query{Columns: []string{"nope"}, To: -1})

	assert.ErrorContains(t, err, "column flashcards.nope does not exist")
}

func TestSupabaseStore_Count(t *testing.T) {
	st, pg := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "0-4/5")
		w.WriteHeader(http.StatusOK)
	})

	n, err := st.Count(context.Background(), store.Filter{OwnerID: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	req := pg.last(t)
	assert.Equal(t, http.MethodHead, req.Method)
	assert.Contains(t, req.Header.Get("Prefer"), "count=exact")
	assert.Equal(t, "eq.owner-1", req.URL.Query().Get("user_id"))
}

func TestSupabaseStore_Delete(t *testing.T) {
	contentRange := "*/0"
	st, pg := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", contentRange)
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	// Rows hidden by the policy look exactly like missing rows
	err := st.Delete(ctx, store.Filter{ID: 7})
	assert.ErrorIs(t, err, store.ErrNoRows)

	req := pg.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "eq.7", req.URL.Query().Get("id"))
	assert.Equal(t, "Bearer user-token", req.Header.Get("Authorization"))

	contentRange = "*/1"
	assert.NoError(t, st.Delete(ctx, store.Filter{ID: 7}))
}

func TestSupabaseStore_Insert(t *testing.T) {
	var body map[string]any
	st, pg := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":         11,
			"user_id":    "owner-1",
			"question":   "Q",
			"answer":     "A",
			"state":      "new",
			"created_at": "2026-10-16T09:30:00Z",
		})
	})

	card := models.Flashcard{UserID: "owner-1", Question: "Q", Answer: "A"}
	require.NoError(t, st.Insert(context.Background(), &card))

	assert.Equal(t, int64(11), card.ID)
	assert.Equal(t, "new", card.State)
	assert.False(t, card.CreatedAt.IsZero())
	assert.Equal(t, map[string]any{"user_id": "owner-1", "question": "Q", "answer": "A"}, body)

	req := pg.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Contains(t, req.Header.Get("Prefer"), "return=representation")
	assert.Equal(t, "application/vnd.pgrst.object+json", req.Header.Get("Accept"))
}

func TestSupabaseStore_InsertPolicyViolation(t *testing.T) {
	st, _ := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{
			"code":    "42501",
			"message": store.PolicyViolationMessage,
		})
	})

	card := models.Flashcard{UserID: "someone-else", Question: "Q", Answer: "A"}
	err := st.Insert(context.Background(), &card)

	require.Error(t, err)
	assert.True(t, flashcard.IsPolicyViolation(err))
}

func TestSupabaseStore_SampleRacesDelete(t *testing.T) {
	// The count still sees three cards but the offset is gone by the fetch
	st, _ := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Range", "0-2/3")
			w.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(w, http.StatusRequestedRangeNotSatisfiable, map[string]string{
			"code":    "PGRST103",
			"message": "Requested range not satisfiable",
		})
	})

	_, err := flashcard.New(st).WithRand(func() float64 { return 0.9 }).RandomSample(context.Background(), "owner-1")

	assert.ErrorIs(t, err, flashcard.ErrNotFound)
}

func TestSupabaseStore_FilterValuesAreEscaped(t *testing.T) {
	st, pg := newSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})

	_, err := st.Find(context.Background(), store.Query{Filter: store.Filter{OwnerID: "a&b=c"}, To: -1})
	require.NoError(t, err)

	raw := pg.last(t).URL.RawQuery
	assert.True(t, strings.Contains(raw, "user_id="+url.QueryEscape("eq.a&b=c")), raw)
}
