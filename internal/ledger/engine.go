package ledger

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"loanledger-backend/internal/domain/loan"
)

// EventSink receives committed domain events. Sinks run while the operation
// lock is held and must not call back into the engine.
type EventSink interface {
	Emit(evt loan.Event)
}

// Config carries the engine's administrative settings at construction time.
type Config struct {
	Admin          string
	Treasury       string
	LenderFeeBps   uint32
	BorrowerFeeBps uint32
}

// Engine orchestrates every loan state transition. Each state-changing
// operation is atomic: either the store mutation, payout legs and event all
// commit, or nothing does. Writers are serialized on mu; the settling flag
// rejects re-entrant calls made from a recipient's receive hook while a
// payout is in flight (the hook runs with mu held, so re-entering would
// otherwise deadlock rather than corrupt state).
type Engine struct {
	mu      sync.Mutex
	store   *Store
	settler Settler
	sink    EventSink

	admin string

	// cfgMu guards the mutable settings below. Writers hold mu as well, so
	// operations reading them under mu need no extra lock; the standalone
	// getters take only cfgMu and stay callable from a receive hook while a
	// settlement holds mu.
	cfgMu          sync.RWMutex
	treasury       string
	lenderFeeBps   uint32
	borrowerFeeBps uint32
	paused         bool

	settling atomic.Bool
	now      func() time.Time
}

func NewEngine(store *Store, settler Settler, cfg Config) (*Engine, error) {
	if strings.TrimSpace(cfg.Treasury) == "" {
		return nil, loan.ErrInvalidTreasury
	}
	if cfg.LenderFeeBps > MaxFeeBps || cfg.BorrowerFeeBps > MaxFeeBps {
		return nil, loan.ErrFeeTooHigh
	}
	return &Engine{
		store:          store,
		settler:        settler,
		admin:          cfg.Admin,
		treasury:       cfg.Treasury,
		lenderFeeBps:   cfg.LenderFeeBps,
		borrowerFeeBps: cfg.BorrowerFeeBps,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

// SetSink wires the engine to an event consumer.
func (e *Engine) SetSink(sink EventSink) { e.sink = sink }

// begin takes the operation lock, failing fast if a settlement is in flight.
func (e *Engine) begin() error {
	if e.settling.Load() {
		return loan.ErrReentrantCall
	}
	e.mu.Lock()
	return nil
}

// settle runs the payout legs with the re-entrancy guard raised.
func (e *Engine) settle(legs []Leg) error {
	e.settling.Store(true)
	err := e.settler.Settle(legs)
	e.settling.Store(false)
	if err != nil {
		return fmt.Errorf("%w: %v", loan.ErrTransferFailed, err)
	}
	return nil
}

func (e *Engine) emit(evt loan.Event) {
	if e.sink != nil {
		e.sink.Emit(evt)
	}
}

// RequestLoan creates a pending loan and returns its id.
func (e *Engine) RequestLoan(caller string, principal uint64, durationDays uint32, purpose string) (uint64, error) {
	if err := e.begin(); err != nil {
		return 0, err
	}
	defer e.mu.Unlock()

	if e.paused {
		return 0, loan.ErrPaused
	}
	if principal == 0 {
		return 0, loan.ErrInvalidAmount
	}
	if durationDays == 0 {
		return 0, loan.ErrInvalidDuration
	}
	if strings.TrimSpace(purpose) == "" {
		return 0, loan.ErrEmptyPurpose
	}

	now := e.now()
	id := e.store.Append(loan.Loan{
		Borrower:     caller,
		Principal:    principal,
		DurationDays: durationDays,
		Purpose:      purpose,
		Status:       loan.StatusPending,
		DueDate:      now.AddDate(0, 0, int(durationDays)),
		CreatedAt:    now,
	})
	e.emit(loan.LoanRequested{ID: id, Borrower: caller, Principal: principal, DurationDays: durationDays})
	return id, nil
}

// FundLoan moves value from the lender into the loan: the lender fee and the
// borrower fee go to the treasury, the principal minus the borrower fee goes
// to the borrower. valueSent must equal principal plus the lender fee under
// the current rates. All three legs and the status transition commit as one
// unit or not at all.
func (e *Engine) FundLoan(caller string, id uint64, valueSent uint64) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if e.paused {
		return loan.ErrPaused
	}
	l, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if l.Status != loan.StatusPending {
		return loan.ErrNotPending
	}
	lenderFee, borrowerFee := ComputeFees(l.Principal, e.lenderFeeBps, e.borrowerFeeBps)
	if valueSent < l.Principal || valueSent-l.Principal != lenderFee {
		return loan.ErrIncorrectValue
	}

	legs := []Leg{
		{To: e.treasury, Amount: lenderFee},
		{To: l.Borrower, Amount: l.Principal - borrowerFee},
		{To: e.treasury, Amount: borrowerFee},
	}
	if err := e.settle(legs); err != nil {
		return err
	}

	due := e.now().AddDate(0, 0, int(l.DurationDays))
	if err := e.store.Update(id, func(rec *loan.Loan) {
		rec.Status = loan.StatusApproved
		rec.Lender = caller
		rec.DueDate = due
	}); err != nil {
		return err
	}
	e.emit(loan.LoanFunded{
		ID:          id,
		Borrower:    l.Borrower,
		Lender:      caller,
		Principal:   l.Principal,
		LenderFee:   lenderFee,
		BorrowerFee: borrowerFee,
	})
	return nil
}

// RejectLoan moves a pending loan to its terminal rejected state. Any account
// may reject any pending loan; the restriction is a product decision that has
// deliberately not been made (see DESIGN.md).
func (e *Engine) RejectLoan(caller string, id uint64) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if e.paused {
		return loan.ErrPaused
	}
	l, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if l.Status != loan.StatusPending {
		return loan.ErrNotPending
	}
	if err := e.store.Update(id, func(rec *loan.Loan) {
		rec.Status = loan.StatusRejected
	}); err != nil {
		return err
	}
	e.emit(loan.LoanRejected{ID: id, Borrower: l.Borrower})
	return nil
}

// RepayLoan settles the principal back to the lender. Any surplus in valueSent
// is returned to the borrower in the same settlement; the ledger never keeps
// it. On success the borrower's credit score grows by CreditPerRepayment.
func (e *Engine) RepayLoan(caller string, id uint64, valueSent uint64) (refund uint64, err error) {
	if err := e.begin(); err != nil {
		return 0, err
	}
	defer e.mu.Unlock()

	if e.paused {
		return 0, loan.ErrPaused
	}
	l, err := e.store.Get(id)
	if err != nil {
		return 0, err
	}
	if caller != l.Borrower {
		return 0, loan.ErrNotBorrower
	}
	if l.Status != loan.StatusApproved {
		return 0, loan.ErrNotApproved
	}
	if valueSent < l.Principal {
		return 0, loan.ErrInsufficientValue
	}
	if l.Lender == "" {
		return 0, loan.ErrNoLender
	}

	refund = valueSent - l.Principal
	legs := []Leg{{To: l.Lender, Amount: l.Principal}}
	if refund > 0 {
		legs = append(legs, Leg{To: l.Borrower, Amount: refund})
	}
	if err := e.settle(legs); err != nil {
		return 0, err
	}

	if err := e.store.Update(id, func(rec *loan.Loan) {
		rec.Status = loan.StatusRepaid
	}); err != nil {
		return 0, err
	}
	e.store.AddCredit(l.Borrower, loan.CreditPerRepayment)
	e.emit(loan.LoanRepaid{ID: id, Borrower: l.Borrower, Lender: l.Lender, Principal: l.Principal})
	return refund, nil
}

// ApproveLoan marks a pending loan approved without moving any value and
// without recording a lender. It exists only for older callers that predate
// the funding flow; an approved loan without a lender cannot be repaid.
//
// Deprecated: use FundLoan.
func (e *Engine) ApproveLoan(caller string, id uint64) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if e.paused {
		return loan.ErrPaused
	}
	if caller != e.admin {
		return loan.ErrNotAdmin
	}
	l, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if l.Status != loan.StatusPending {
		return loan.ErrNotPending
	}
	due := e.now().AddDate(0, 0, int(l.DurationDays))
	return e.store.Update(id, func(rec *loan.Loan) {
		rec.Status = loan.StatusApproved
		rec.DueDate = due
	})
}

// SetFees updates both fee rates; each is capped at MaxFeeBps. Takes effect
// for subsequent operations immediately.
func (e *Engine) SetFees(caller string, lenderFeeBps, borrowerFeeBps uint32) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if caller != e.admin {
		return loan.ErrNotAdmin
	}
	if lenderFeeBps > MaxFeeBps || borrowerFeeBps > MaxFeeBps {
		return loan.ErrFeeTooHigh
	}
	e.cfgMu.Lock()
	e.lenderFeeBps = lenderFeeBps
	e.borrowerFeeBps = borrowerFeeBps
	e.cfgMu.Unlock()
	return nil
}

// SetTreasury redirects future fee payouts to a new account.
func (e *Engine) SetTreasury(caller, account string) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if caller != e.admin {
		return loan.ErrNotAdmin
	}
	if strings.TrimSpace(account) == "" {
		return loan.ErrInvalidTreasury
	}
	e.cfgMu.Lock()
	e.treasury = account
	e.cfgMu.Unlock()
	return nil
}

// Pause blocks all state-changing loan operations until Unpause.
func (e *Engine) Pause(caller string) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if caller != e.admin {
		return loan.ErrNotAdmin
	}
	e.cfgMu.Lock()
	e.paused = true
	e.cfgMu.Unlock()
	return nil
}

func (e *Engine) Unpause(caller string) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if caller != e.admin {
		return loan.ErrNotAdmin
	}
	e.cfgMu.Lock()
	e.paused = false
	e.cfgMu.Unlock()
	return nil
}

// Fees returns the current lender and borrower rates in basis points. The
// config getters never take the operation lock, so a receive hook may call
// them mid-settlement.
func (e *Engine) Fees() (lenderFeeBps, borrowerFeeBps uint32) {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()
	return e.lenderFeeBps, e.borrowerFeeBps
}

func (e *Engine) Treasury() string {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()
	return e.treasury
}

func (e *Engine) Paused() bool {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()
	return e.paused
}

// Read-only queries delegate to the store; they never block behind a writer
// holding the operation lock.

func (e *Engine) LoanCount() uint64 { return e.store.Count() }

func (e *Engine) GetLoan(id uint64) (loan.Loan, error) { return e.store.Get(id) }

func (e *Engine) UserLoanCount(account string) uint64 { return e.store.UserLoanCount(account) }

func (e *Engine) UserLoanAt(account string, i uint64) (uint64, error) {
	return e.store.UserLoanAt(account, i)
}

func (e *Engine) UserLoanIDs(account string) []uint64 { return e.store.UserLoanIDs(account) }

func (e *Engine) CreditScoreOf(account string) uint64 { return e.store.CreditScoreOf(account) }
