package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcards-api/flashcard"
	"github.com/andrewpaige1/flashcards-api/middleware"
	"github.com/andrewpaige1/flashcards-api/store"
	"github.com/andrewpaige1/flashcards-api/utils"
)

type Handler struct {
	Stores   store.Factory
	Log      *zap.Logger
	validate *validator.Validate
}

func NewHandler(stores store.Factory, logger *zap.Logger) *Handler {
	return &Handler{
		Stores:   stores,
		Log:      logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type listQuery struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1"`
}

type createRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// service resolves the caller and a store handle bound to them. It writes
// the error response itself when it returns false.
func (h *Handler) service(w http.ResponseWriter, r *http.Request, op string) (*flashcard.Service, string, bool) {
	ownerID, ok := utils.GetOwnerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, "", false
	}

	st, err := h.Stores.For(store.Principal{ID: ownerID, Token: utils.GetAccessToken(r)})
	if err != nil {
		h.logger(r, op).Error("Failed to open store", zap.String("owner", ownerID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return nil, "", false
	}

	return flashcard.New(st), ownerID, true
}

func (h *Handler) logger(r *http.Request, op string) *zap.Logger {
	return h.Log.With(zap.String("op", op), zap.String("requestID", middleware.RequestID(r.Context())))
}

// GET /api/flashcards?page&limit
func (h *Handler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	svc, ownerID, ok := h.service(w, r, "GetFlashcards")
	if !ok {
		return
	}

	q := listQuery{Page: flashcard.DefaultPage, Limit: flashcard.DefaultLimit}
	details := map[string]string{}
	params := r.URL.Query()
	for name, dst := range map[string]*int{"page": &q.Page, "limit": &q.Limit} {
		// Absent means default; present but empty is invalid
		if _, ok := params[name]; !ok {
			continue
		}
		n, err := strconv.Atoi(params.Get(name))
		if err != nil {
			details[name] = "must be an integer"
			continue
		}
		*dst = n
	}
	if len(details) == 0 {
		details = h.validationDetails(q)
	}
	if len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid query parameters", "details": details})
		return
	}

	page, err := svc.ListPage(r.Context(), ownerID, q.Page, q.Limit)
	if err != nil {
		h.logger(r, "GetFlashcards").Error("Failed to list flashcards", zap.String("owner", ownerID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// POST /api/flashcards
func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	svc, ownerID, ok := h.service(w, r, "CreateFlashcard")
	if !ok {
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req createRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := h.validationDetails(req); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body", "details": details})
		return
	}

	card, err := svc.Create(r.Context(), ownerID, req.Question, req.Answer)
	if err != nil {
		h.logger(r, "CreateFlashcard").Error("Failed to create flashcard", zap.String("owner", ownerID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.logger(r, "CreateFlashcard").Debug("Created flashcard", zap.String("owner", ownerID), zap.Int64("id", card.ID))
	writeJSON(w, http.StatusCreated, map[string]any{
		"data":    card,
		"message": "Flashcard created successfully.",
	})
}

// DELETE /api/flashcards/{id}
func (h *Handler) DeleteFlashcardByID(w http.ResponseWriter, r *http.Request) {
	svc, ownerID, ok := h.service(w, r, "DeleteFlashcardByID")
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	err = svc.Delete(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Flashcard deleted successfully."})
	case errors.Is(err, flashcard.ErrNotFound):
		writeError(w, http.StatusNotFound, "Flashcard not found")
	case flashcard.IsPolicyViolation(err):
		h.logger(r, "DeleteFlashcardByID").Info("Delete denied by policy", zap.String("owner", ownerID), zap.Int64("id", id))
		writeError(w, http.StatusForbidden, "Forbidden")
	default:
		h.logger(r, "DeleteFlashcardByID").Error("Failed to delete flashcard", zap.String("owner", ownerID), zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// GET /api/flashcards/study/random
func (h *Handler) GetRandomFlashcard(w http.ResponseWriter, r *http.Request) {
	svc, ownerID, ok := h.service(w, r, "GetRandomFlashcard")
	if !ok {
		return
	}

	card, err := svc.RandomSample(r.Context(), ownerID)
	switch {
	case errors.Is(err, flashcard.ErrNotFound):
		writeError(w, http.StatusNotFound, "No flashcards found")
	case err != nil:
		h.logger(r, "GetRandomFlashcard").Error("Failed to sample flashcard", zap.String("owner", ownerID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"data": card})
	}
}

func (h *Handler) validationDetails(v any) map[string]string {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}

	details := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = "failed on " + fe.Tag()
		}
		return details
	}
	details["_"] = err.Error()
	return details
}
