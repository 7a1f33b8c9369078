package sqlstore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"loanledger-backend/internal/domain/journal"
	"loanledger-backend/internal/domain/loan"
	"loanledger-backend/pkg/id"
)

const appendTimeout = 2 * time.Second

// Sink persists engine events into the journal. Emit runs inside the engine's
// operation lock, after the state transition has committed; a journal write
// failure is logged, never propagated back into the ledger.
type Sink struct{ repo journal.Repository }

func NewSink(repo journal.Repository) *Sink { return &Sink{repo: repo} }

func (s *Sink) Emit(evt loan.Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("journal: marshal %s for loan %d: %v", evt.Name(), evt.LoanID(), err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	rec := &journal.EventRecord{
		EventID: id.NewID32(),
		Name:    evt.Name(),
		LoanID:  evt.LoanID(),
		Payload: string(payload),
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		log.Printf("journal: append %s for loan %d: %v", evt.Name(), evt.LoanID(), err)
	}
}
