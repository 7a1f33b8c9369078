package journalmock

import (
	"context"

	domain "loanledger-backend/internal/domain/journal"
)

// Repo is a function-backed mock that satisfies journal.Repository.
type Repo struct {
	AppendFn       func(ctx context.Context, rec *domain.EventRecord) error
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.EventRecord, error)
}

func (m *Repo) Append(ctx context.Context, rec *domain.EventRecord) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, rec)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.EventRecord, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}
