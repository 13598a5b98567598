// Package flashcard is the access layer over the flashcards table. Every
// operation is a single attempt; failures surface to the caller unchanged.
package flashcard

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/andrewpaige1/flashcards-api/models"
	"github.com/andrewpaige1/flashcards-api/store"
)

var (
	listColumns  = []string{"id", "question", "answer", "state"}
	studyColumns = []string{"id", "question", "answer"}
)

type Service struct {
	store store.Store
	rand  func() float64
}

func New(st store.Store) *Service {
	return &Service{store: st, rand: rand.Float64}
}

// WithRand replaces the [0,1) source used by RandomSample.
func (s *Service) WithRand(r func() float64) *Service {
	s.rand = r
	return s
}

func (s *Service) Create(ctx context.Context, ownerID, question, answer string) (*models.Flashcard, error) {
	card := models.Flashcard{
		UserID:   ownerID,
		Question: question,
		Answer:   answer,
	}
	if err := s.store.Insert(ctx, &card); err != nil {
		return nil, persistence("create", err)
	}
	return &card, nil
}

// ListPage fetches one page of the owner's cards together with the total
// count. page and limit must already be validated as positive.
func (s *Service) ListPage(ctx context.Context, ownerID string, page, limit int) (*models.FlashcardPage, error) {
	from, to := PageRange(page, limit)
	filter := store.Filter{OwnerID: ownerID}

	var (
		g        errgroup.Group
		rows     []models.Flashcard
		count    int64
		dataErr  error
		countErr error
	)

	g.Go(func() error {
		rows, dataErr = s.store.Find(ctx, store.Query{Filter: filter, Columns: listColumns, From: from, To: to})
		return dataErr
	})
	g.Go(func() error {
		count, countErr = s.store.Count(ctx, filter)
		return countErr
	})

	if err := g.Wait(); err != nil {
		// Both queries have finished; the data error wins when both failed
		if dataErr != nil {
			return nil, persistence("list", dataErr)
		}
		return nil, persistence("count", countErr)
	}

	data := make([]models.FlashcardListItem, 0, len(rows))
	for _, row := range rows {
		data = append(data, row.ListItem())
	}

	return &models.FlashcardPage{
		Data: data,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  TotalPages(count, limit),
			TotalItems:  count,
		},
	}, nil
}

// Delete removes a card by id. Ownership is left to the store's policy.
func (s *Service) Delete(ctx context.Context, flashcardID int64) error {
	err := s.store.Delete(ctx, store.Filter{ID: flashcardID})
	if errors.Is(err, store.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return persistence("delete", err)
	}
	return nil
}

// RandomSample counts the owner's cards and fetches the one at a random
// offset. The two steps are not atomic: a card deleted in between yields
// ErrNotFound, and without an explicit sort the same offset may name a
// different card on each call.
func (s *Service) RandomSample(ctx context.Context, ownerID string) (*models.StudyFlashcard, error) {
	filter := store.Filter{OwnerID: ownerID}

	count, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, persistence("count", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	idx := int(math.Floor(s.rand() * float64(count)))
	if idx >= int(count) {
		idx = int(count) - 1
	}

	rows, err := s.store.Find(ctx, store.Query{Filter: filter, Columns: studyColumns, From: idx, To: idx})
	if errors.Is(err, store.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistence("sample", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	card := rows[0].StudyItem()
	return &card, nil
}
