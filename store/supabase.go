package store

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/supabase-community/supabase-go"

	"github.com/andrewpaige1/flashcards-api/models"
)

// SupabaseFactory creates a PostgREST client per principal carrying the
// caller's access token, so the hosted database applies its own row-level
// policies.
type SupabaseFactory struct {
	URL     string
	AnonKey string
}

func (f SupabaseFactory) For(p Principal) (Store, error) {
	if p.Token == "" {
		return nil, errors.New("store: supabase requires the caller's access token")
	}

	client, err := supabase.NewClient(f.URL, f.AnonKey, &supabase.ClientOptions{
		Schema:  "public",
		Headers: map[string]string{"Authorization": "Bearer " + p.Token},
	})
	if err != nil {
		return nil, err
	}
	return &SupabaseStore{client: client}, nil
}

type SupabaseStore struct {
	client *supabase.Client
}

// PostgREST answers an offset past the last row with PGRST103 instead of an
// empty result.
const rangeNotSatisfiable = "PGRST103"

type insertRow struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// The context is not threaded through: the PostgREST client builds its own
// requests.
func (s *SupabaseStore) Insert(_ context.Context, card *models.Flashcard) error {
	row := insertRow{UserID: card.UserID, Question: card.Question, Answer: card.Answer}

	var inserted models.Flashcard
	_, err := s.client.From(Table).
		Insert(row, false, "", "representation", "").
		Single().
		ExecuteTo(&inserted)
	if err != nil {
		return err
	}
	*card = inserted
	return nil
}

func (s *SupabaseStore) Find(_ context.Context, q Query) ([]models.Flashcard, error) {
	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ",")
	}

	fb := s.client.From(Table).Select(columns, "", false)
	if q.Filter.ID != 0 {
		fb = fb.Eq("id", strconv.FormatInt(q.Filter.ID, 10))
	}
	if q.Filter.OwnerID != "" {
		fb = fb.Eq("user_id", q.Filter.OwnerID)
	}
	if q.To >= q.From {
		fb = fb.Range(q.From, q.To, "")
	}

	var rows []models.Flashcard
	if _, err := fb.ExecuteTo(&rows); err != nil {
		if strings.Contains(err.Error(), rangeNotSatisfiable) {
			return []models.Flashcard{}, nil
		}
		return nil, err
	}
	return rows, nil
}

func (s *SupabaseStore) Count(_ context.Context, f Filter) (int64, error) {
	fb := s.client.From(Table).Select("*", "exact", true)
	if f.ID != 0 {
		fb = fb.Eq("id", strconv.FormatInt(f.ID, 10))
	}
	if f.OwnerID != "" {
		fb = fb.Eq("user_id", f.OwnerID)
	}

	_, count, err := fb.Execute()
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SupabaseStore) Delete(_ context.Context, f Filter) error {
	fb := s.client.From(Table).Delete("minimal", "exact")
	if f.ID != 0 {
		fb = fb.Eq("id", strconv.FormatInt(f.ID, 10))
	}
	if f.OwnerID != "" {
		fb = fb.Eq("user_id", f.OwnerID)
	}

	_, count, err := fb.Execute()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoRows
	}
	return nil
}
