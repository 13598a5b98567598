package models

import (
	"time"
)

// Flashcard represents an individual flashcard owned by one user
type Flashcard struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index;size:100" json:"user_id"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    string    `gorm:"not null" json:"answer"`
	State     string    `gorm:"not null;default:new;size:32" json:"state"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// FlashcardListItem is the projection returned by list pages
type FlashcardListItem struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	State    string `json:"state"`
}

// StudyFlashcard is the projection returned by random sampling
type StudyFlashcard struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// FlashcardPage is one page of a user's flashcards
type FlashcardPage struct {
	Data       []FlashcardListItem `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

func (f Flashcard) ListItem() FlashcardListItem {
	return FlashcardListItem{ID: f.ID, Question: f.Question, Answer: f.Answer, State: f.State}
}

func (f Flashcard) StudyItem() StudyFlashcard {
	return StudyFlashcard{ID: f.ID, Question: f.Question, Answer: f.Answer}
}
