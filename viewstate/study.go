package viewstate

import (
	"context"
	"errors"
	"sync"

	"github.com/andrewpaige1/flashcards-api/client"
	"github.com/andrewpaige1/flashcards-api/models"
)

const (
	EmptyMessage      = "You have no cards to study. Create some first!"
	LoadFailedMessage = "Could not load a card. Please try again."
)

type StudyAPI interface {
	RandomFlashcard(ctx context.Context) (*models.StudyFlashcard, error)
}

type StudyStatus int

const (
	StudyLoading StudyStatus = iota
	StudyReady
	StudyEmpty
	StudyError
)

func (s StudyStatus) String() string {
	switch s {
	case StudyLoading:
		return "loading"
	case StudyReady:
		return "ready"
	case StudyEmpty:
		return "empty"
	case StudyError:
		return "error"
	}
	return "unknown"
}

type StudyModel struct {
	Status StudyStatus
	Card   *models.StudyFlashcard
	Error  string
}

type StudyEvent interface{ studyEvent() }

type (
	CardRequested struct{}
	CardLoaded    struct{ Card models.StudyFlashcard }
	NoCards       struct{}
	CardFailed    struct{ Err string }
)

func (CardRequested) studyEvent() {}
func (CardLoaded) studyEvent()    {}
func (NoCards) studyEvent()       {}
func (CardFailed) studyEvent()    {}

func ReduceStudy(m StudyModel, ev StudyEvent) StudyModel {
	switch e := ev.(type) {
	case CardRequested:
		return StudyModel{Status: StudyLoading}
	case CardLoaded:
		card := e.Card
		return StudyModel{Status: StudyReady, Card: &card}
	case NoCards:
		return StudyModel{Status: StudyEmpty, Error: EmptyMessage}
	case CardFailed:
		return StudyModel{Status: StudyError, Error: e.Err}
	}
	return m
}

// Study is the study view's state machine. Every fetch is a fresh round
// trip; only the latest fetch may update the model.
type Study struct {
	api StudyAPI

	mu      sync.Mutex
	model   StudyModel
	seq     uint64
	mounted bool
	closed  bool
}

func NewStudy(api StudyAPI) *Study {
	return &Study{api: api, model: StudyModel{Status: StudyLoading}}
}

func (s *Study) State() StudyModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.model
	if s.model.Card != nil {
		card := *s.model.Card
		m.Card = &card
	}
	return m
}

func (s *Study) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Mount performs the automatic first fetch.
func (s *Study) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.mu.Unlock()

	s.FetchRandomCard(ctx)
}

func (s *Study) FetchRandomCard(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.model = ReduceStudy(s.model, CardRequested{})
	s.mu.Unlock()

	card, err := s.api.RandomFlashcard(ctx)

	var ev StudyEvent
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotFound):
		ev = NoCards{}
	case errors.As(err, &apiErr):
		ev = CardFailed{Err: LoadFailedMessage}
	case err != nil:
		ev = CardFailed{Err: err.Error()}
	default:
		ev = CardLoaded{Card: *card}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq {
		return
	}
	s.model = ReduceStudy(s.model, ev)
}
