// Package viewstate drives the "my cards" list and the study view. Each
// view is a model, a pure reducer over events, and a machine that runs the
// network calls and feeds their outcomes back through the reducer.
package viewstate

import (
	"context"
	"errors"
	"sync"

	"github.com/andrewpaige1/flashcards-api/client"
	"github.com/andrewpaige1/flashcards-api/models"
)

const PageSize = 30

// Paths the views navigate to.
const (
	CreatePath = "/create"
	LoginPath  = "/login"
)

type CardsAPI interface {
	ListFlashcards(ctx context.Context, page, limit int) (*models.FlashcardPage, error)
	DeleteFlashcard(ctx context.Context, id int64) error
}

// Navigator performs the redirects a view asks for.
type Navigator interface {
	Redirect(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

type CardsModel struct {
	Cards        []models.FlashcardListItem
	Page         int // next page to fetch
	IsLoading    bool
	HasMore      bool
	Error        string
	IsDeleting   bool
	CardToDelete *models.FlashcardListItem

	// Redirect is set once the view has navigated away; the model is
	// frozen from then on.
	Redirect string
}

func InitialCards() CardsModel {
	return CardsModel{Page: 1, IsLoading: true, HasMore: true}
}

func (m CardsModel) Terminated() bool { return m.Redirect != "" }

type CardsEvent interface{ cardsEvent() }

type (
	PageRequested   struct{}
	PageLoaded      struct{ Page models.FlashcardPage }
	PageFailed      struct{ Err string }
	DeleteRequested struct{ Card models.FlashcardListItem }
	DeleteCancelled struct{}
	DeleteStarted   struct{}
	DeleteSucceeded struct{ ID int64 }
	DeleteFailed    struct{ Err string }
	Unauthorized    struct{}
)

func (PageRequested) cardsEvent()   {}
func (PageLoaded) cardsEvent()      {}
func (PageFailed) cardsEvent()      {}
func (DeleteRequested) cardsEvent() {}
func (DeleteCancelled) cardsEvent() {}
func (DeleteStarted) cardsEvent()   {}
func (DeleteSucceeded) cardsEvent() {}
func (DeleteFailed) cardsEvent()    {}
func (Unauthorized) cardsEvent()    {}

// ReduceCards returns the model after ev. It never mutates m's slices.
func ReduceCards(m CardsModel, ev CardsEvent) CardsModel {
	if m.Terminated() {
		return m
	}

	switch e := ev.(type) {
	case PageRequested:
		m.IsLoading = true
		m.Error = ""

	case PageLoaded:
		if m.Page == 1 && e.Page.Pagination.TotalItems == 0 {
			m.Redirect = CreatePath
			return m
		}
		if m.Page == 1 {
			m.Cards = append([]models.FlashcardListItem(nil), e.Page.Data...)
		} else {
			cards := make([]models.FlashcardListItem, 0, len(m.Cards)+len(e.Page.Data))
			m.Cards = append(append(cards, m.Cards...), e.Page.Data...)
		}
		m.Page++
		m.HasMore = e.Page.Pagination.CurrentPage < e.Page.Pagination.TotalPages
		m.IsLoading = false

	case PageFailed:
		m.IsLoading = false
		m.Error = e.Err

	case DeleteRequested:
		card := e.Card
		m.CardToDelete = &card

	case DeleteCancelled:
		m.CardToDelete = nil

	case DeleteStarted:
		m.IsDeleting = true
		m.Error = ""

	case DeleteSucceeded:
		m.Cards = removeCard(m.Cards, e.ID)
		m.IsDeleting = false
		m.CardToDelete = nil

	case DeleteFailed:
		m.IsDeleting = false
		m.CardToDelete = nil
		m.Error = e.Err

	case Unauthorized:
		m.Redirect = LoginPath
	}

	return m
}

func removeCard(cards []models.FlashcardListItem, id int64) []models.FlashcardListItem {
	out := make([]models.FlashcardListItem, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// Cards is the list view's state machine. All methods are safe for
// concurrent use.
type Cards struct {
	api CardsAPI
	nav Navigator

	mu      sync.Mutex
	model   CardsModel
	mounted bool
	closed  bool
}

func NewCards(api CardsAPI, nav Navigator) *Cards {
	return &Cards{api: api, nav: nav, model: InitialCards()}
}

func (c *Cards) State() CardsModel {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.model
	m.Cards = append([]models.FlashcardListItem(nil), c.model.Cards...)
	if c.model.CardToDelete != nil {
		card := *c.model.CardToDelete
		m.CardToDelete = &card
	}
	return m
}

// Dispatch applies ev and performs any redirect it produced. Events arriving
// after Close are dropped.
func (c *Cards) Dispatch(ev CardsEvent) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	before := c.model.Redirect
	c.model = ReduceCards(c.model, ev)
	redirect := c.model.Redirect
	c.mu.Unlock()

	if redirect != "" && before == "" && c.nav != nil {
		c.nav.Redirect(redirect)
	}
}

// Close discards the view. Pending completions become no-ops.
func (c *Cards) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Mount loads the first page. Only the first call does anything.
func (c *Cards) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted || c.closed {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	page := c.model.Page
	c.mu.Unlock()

	c.load(ctx, page)
}

// FetchNextPage loads the next page unless a load is running or there is
// nothing left.
func (c *Cards) FetchNextPage(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.model.Terminated() || c.model.IsLoading || !c.model.HasMore {
		c.mu.Unlock()
		return
	}
	c.model = ReduceCards(c.model, PageRequested{})
	page := c.model.Page
	c.mu.Unlock()

	c.load(ctx, page)
}

func (c *Cards) load(ctx context.Context, page int) {
	result, err := c.api.ListFlashcards(ctx, page, PageSize)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		c.Dispatch(Unauthorized{})
	case err != nil:
		c.Dispatch(PageFailed{Err: err.Error()})
	default:
		c.Dispatch(PageLoaded{Page: *result})
	}
}

func (c *Cards) RequestDelete(card models.FlashcardListItem) {
	c.Dispatch(DeleteRequested{Card: card})
}

func (c *Cards) CancelDelete() {
	c.Dispatch(DeleteCancelled{})
}

// ConfirmDelete deletes the pending card. It does nothing without a pending
// card or while a delete is already running.
func (c *Cards) ConfirmDelete(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.model.Terminated() || c.model.CardToDelete == nil || c.model.IsDeleting {
		c.mu.Unlock()
		return
	}
	id := c.model.CardToDelete.ID
	c.model = ReduceCards(c.model, DeleteStarted{})
	c.mu.Unlock()

	err := c.api.DeleteFlashcard(ctx, id)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		c.Dispatch(Unauthorized{})
	case err != nil:
		c.Dispatch(DeleteFailed{Err: err.Error()})
	default:
		c.Dispatch(DeleteSucceeded{ID: id})
	}
}
