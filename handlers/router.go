package handlers

import "net/http"

type RouteOptions struct {
	// SyncUser wraps routes that write on behalf of the caller.
	SyncUser func(http.HandlerFunc) http.HandlerFunc
	// DevToken is mounted at /api/dev/token when set.
	DevToken http.HandlerFunc
}

func (h *Handler) Routes(opts RouteOptions) *http.ServeMux {
	syncUser := opts.SyncUser
	if syncUser == nil {
		syncUser = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", Health)

	// Flashcard
	mux.HandleFunc("GET /api/flashcards", h.GetFlashcards)
	mux.HandleFunc("POST /api/flashcards", syncUser(h.CreateFlashcard))
	mux.HandleFunc("DELETE /api/flashcards/{id}", syncUser(h.DeleteFlashcardByID))
	mux.HandleFunc("GET /api/flashcards/study/random", h.GetRandomFlashcard)

	if opts.DevToken != nil {
		mux.HandleFunc("GET /api/dev/token", opts.DevToken)
	}

	return mux
}
