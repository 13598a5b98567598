package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andrewpaige1/flashcards-api/models"
)

// GormFactory serves handles over a gorm connection. The row-level policy of
// the hosted database is enforced here instead: reads only see the
// principal's rows, and writes on anyone else's rows are rejected.
type GormFactory struct {
	DB *gorm.DB
}

func (f GormFactory) For(p Principal) (Store, error) {
	if p.ID == "" {
		return nil, errors.New("store: principal id is required")
	}
	return &GormStore{db: f.DB, principal: p.ID}, nil
}

type GormStore struct {
	db        *gorm.DB
	principal string
}

func (s *GormStore) Insert(ctx context.Context, card *models.Flashcard) error {
	if card.UserID != s.principal {
		return ErrPolicyViolation
	}

	if err := s.db.WithContext(ctx).Create(card).Error; err != nil {
		return err
	}

	// Reload so store-side defaults (state, created_at) are populated
	return s.db.WithContext(ctx).First(card, card.ID).Error
}

func (s *GormStore) Find(ctx context.Context, q Query) ([]models.Flashcard, error) {
	tx := applyFilter(s.visible(ctx), q.Filter)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	if q.To >= q.From {
		tx = tx.Offset(q.From).Limit(q.To - q.From + 1)
	}

	var rows []models.Flashcard
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	if err := applyFilter(s.visible(ctx), f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *GormStore) Delete(ctx context.Context, f Filter) error {
	var foreign int64
	err := applyFilter(s.db.WithContext(ctx).Model(&models.Flashcard{}), f).
		Where("user_id <> ?", s.principal).
		Count(&foreign).Error
	if err != nil {
		return err
	}
	if foreign > 0 {
		return ErrPolicyViolation
	}

	result := applyFilter(s.visible(ctx), f).Delete(&models.Flashcard{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRows
	}
	return nil
}

func (s *GormStore) visible(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Flashcard{}).Where("user_id = ?", s.principal)
}

func applyFilter(tx *gorm.DB, f Filter) *gorm.DB {
	if f.ID != 0 {
		tx = tx.Where("id = ?", f.ID)
	}
	if f.OwnerID != "" {
		tx = tx.Where("user_id = ?", f.OwnerID)
	}
	return tx
}
