package journal

import "context"

type Repository interface {
	Append(ctx context.Context, rec *EventRecord) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]EventRecord, error)
}
