package ledger

import (
	"sync"

	"loanledger-backend/internal/domain/loan"
)

// Store holds every loan ever created, a per-borrower index of loan ids and
// per-account credit scores. It is append-only: loans are never removed and
// ids are dense, zero-based, assigned in append order.
//
// The RWMutex gives readers a consistent view: a reader sees either the
// pre-state or the post-state of any write, never an interleaving. All
// mutation goes through the engine, which serializes writers on top of this.
type Store struct {
	mu     sync.RWMutex
	loans  []loan.Loan
	index  map[string][]uint64
	scores map[string]uint64
}

func NewStore() *Store {
	return &Store{
		index:  make(map[string][]uint64),
		scores: make(map[string]uint64),
	}
}

// Append assigns the next dense id to l, records it and indexes it under the
// borrower. The id is valid to reference as soon as Append returns.
func (s *Store) Append(l loan.Loan) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uint64(len(s.loans))
	l.ID = id
	s.loans = append(s.loans, l)
	s.index[l.Borrower] = append(s.index[l.Borrower], id)
	return id
}

// Get returns a copy of the loan with the given id.
func (s *Store) Get(id uint64) (loan.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id >= uint64(len(s.loans)) {
		return loan.Loan{}, loan.ErrLoanNotFound
	}
	return s.loans[id], nil
}

// Update applies fn to the stored loan under the write lock. fn must not call
// back into the store.
func (s *Store) Update(id uint64, fn func(*loan.Loan)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id >= uint64(len(s.loans)) {
		return loan.ErrLoanNotFound
	}
	fn(&s.loans[id])
	return nil
}

func (s *Store) Count() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.loans))
}

func (s *Store) UserLoanCount(account string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.index[account]))
}

func (s *Store) UserLoanAt(account string, i uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.index[account]
	if i >= uint64(len(ids)) {
		return 0, loan.ErrIndexOutOfRange
	}
	return ids[i], nil
}

// UserLoanIDs returns a copy of the borrower's loan ids in request order.
func (s *Store) UserLoanIDs(account string) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.index[account]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

func (s *Store) CreditScoreOf(account string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores[account]
}

// AddCredit increases the account's credit score; scores only ever grow.
func (s *Store) AddCredit(account string, points uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[account] += points
}
