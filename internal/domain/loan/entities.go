package loan

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRepaid   Status = "repaid"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusRepaid || s == StatusRejected
}

// CreditPerRepayment is added to the borrower's credit score each time one of
// their loans reaches StatusRepaid.
const CreditPerRepayment = 10

// Loan is the ledger record for a single loan. IDs are dense, zero-based and
// assigned in creation order. Borrower, Principal, DurationDays and Purpose are
// fixed at creation; Lender stays empty until funding and is immutable after.
type Loan struct {
	ID           uint64    `json:"loan_id"`
	Borrower     string    `json:"borrower"`
	Principal    uint64    `json:"principal"`
	DurationDays uint32    `json:"duration_days"`
	Purpose      string    `json:"purpose"`
	Status       Status    `json:"status"`
	DueDate      time.Time `json:"due_date"`
	Lender       string    `json:"lender,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
