package sqlstore

import (
	"context"
	"testing"

	domain "loanledger-backend/internal/domain/journal"
	"loanledger-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func makeRecord(loanID uint64, name string) *domain.EventRecord {
	return &domain.EventRecord{
		EventID: id.NewID32(),
		Name:    name,
		LoanID:  loanID,
		Payload: `{"loan_id":0}`,
	}
}

func TestJournal_AppendAndListByLoanID(t *testing.T) {
	repo := NewJournalRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Append(ctx, makeRecord(0, "loan.requested")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, makeRecord(1, "loan.requested")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, makeRecord(0, "loan.funded")); err != nil {
		t.Fatalf("append: %v", err)
	}

	recs, err := repo.ListByLoanID(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	// append order preserved
	if recs[0].Name != "loan.requested" || recs[1].Name != "loan.funded" {
		t.Fatalf("order wrong: %s, %s", recs[0].Name, recs[1].Name)
	}
}

func TestJournal_ListUnknownLoanIsEmpty(t *testing.T) {
	repo := NewJournalRepository(openTestDB(t))
	recs, err := repo.ListByLoanID(context.Background(), 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("got %d records, want none", len(recs))
	}
}

func TestJournal_EventIDUnique(t *testing.T) {
	repo := NewJournalRepository(openTestDB(t))
	ctx := context.Background()

	rec := makeRecord(0, "loan.requested")
	if err := repo.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	dup := &domain.EventRecord{EventID: rec.EventID, Name: "loan.funded", LoanID: 0, Payload: "{}"}
	if err := repo.Append(ctx, dup); err == nil {
		t.Fatal("expected unique index violation on duplicate event id")
	}
}
