package sqlstore

import (
	"context"
	"errors"

	"loanledger-backend/internal/domain/journal"

	"gorm.io/gorm"
)

type JournalRepository struct{ db *gorm.DB }

func NewJournalRepository(db *gorm.DB) *JournalRepository { return &JournalRepository{db: db} }

// Migrate creates the journal schema. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&journal.EventRecord{})
}

func (r *JournalRepository) Append(ctx context.Context, rec *journal.EventRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *JournalRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]journal.EventRecord, error) {
	var out []journal.EventRecord
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, journal.ErrNotFound
		}
		return nil, res.Error
	}
	return out, nil
}
