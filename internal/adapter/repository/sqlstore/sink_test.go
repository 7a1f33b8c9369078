package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	domain "loanledger-backend/internal/domain/journal"
	"loanledger-backend/internal/domain/loan"
	"loanledger-backend/internal/testutil/journalmock"
)

func TestSink_PersistsEventPayload(t *testing.T) {
	var got *domain.EventRecord
	repo := &journalmock.Repo{
		AppendFn: func(ctx context.Context, rec *domain.EventRecord) error {
			got = rec
			return nil
		},
	}

	NewSink(repo).Emit(loan.LoanFunded{
		ID:          3,
		Borrower:    "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Lender:      "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Principal:   1000,
		LenderFee:   10,
		BorrowerFee: 5,
	})

	if got == nil {
		t.Fatal("nothing appended")
	}
	if got.Name != "loan.funded" || got.LoanID != 3 {
		t.Fatalf("record = %+v", got)
	}
	if len(got.EventID) != 32 {
		t.Fatalf("event id = %q, want 32-char id", got.EventID)
	}

	var payload loan.LoanFunded
	if err := json.Unmarshal([]byte(got.Payload), &payload); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if payload.Principal != 1000 || payload.LenderFee != 10 || payload.BorrowerFee != 5 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestSink_SwallowsAppendFailure(t *testing.T) {
	repo := &journalmock.Repo{
		AppendFn: func(ctx context.Context, rec *domain.EventRecord) error {
			return errors.New("db down")
		},
	}
	// must not panic or propagate: the ledger op has already committed
	NewSink(repo).Emit(loan.LoanRejected{ID: 1, Borrower: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"})
}

func TestSink_EndToEndWithSQLite(t *testing.T) {
	repo := NewJournalRepository(openTestDB(t))
	sink := NewSink(repo)

	sink.Emit(loan.LoanRequested{ID: 0, Borrower: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Principal: 1000, DurationDays: 30})
	sink.Emit(loan.LoanRejected{ID: 0, Borrower: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"})

	recs, err := repo.ListByLoanID(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 || recs[0].Name != "loan.requested" || recs[1].Name != "loan.rejected" {
		t.Fatalf("records = %+v", recs)
	}
}
