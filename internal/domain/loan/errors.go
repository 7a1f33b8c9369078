package loan

import "errors"

// Validation errors: caller-fixable, reported synchronously, no state change.
var (
	ErrInvalidAmount     = errors.New("loan: principal must be positive")
	ErrInvalidDuration   = errors.New("loan: duration must be positive")
	ErrEmptyPurpose      = errors.New("loan: purpose must not be empty")
	ErrIncorrectValue    = errors.New("loan: value sent must equal principal plus lender fee")
	ErrInsufficientValue = errors.New("loan: value sent is below principal")
	ErrIndexOutOfRange   = errors.New("loan: index out of range")
	ErrLoanNotFound      = errors.New("loan: not found")
)

// State-conflict errors: a stale or unauthorized attempt against the current
// loan state.
var (
	ErrNotPending  = errors.New("loan: not in pending state")
	ErrNotApproved = errors.New("loan: not in approved state")
	ErrNotBorrower = errors.New("loan: caller is not the borrower")
	ErrNoLender    = errors.New("loan: no lender on record")
)

// Transfer errors: a payout leg was rejected; the whole operation rolls back.
var (
	ErrTransferFailed = errors.New("loan: transfer failed")
	ErrReentrantCall  = errors.New("loan: reentrant call rejected")
)

// Administrative errors.
var (
	ErrPaused          = errors.New("loan: ledger is paused")
	ErrFeeTooHigh      = errors.New("loan: fee rate above cap")
	ErrInvalidTreasury = errors.New("loan: invalid treasury account")
	ErrNotAdmin        = errors.New("loan: caller is not the administrator")
)
