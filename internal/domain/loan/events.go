package loan

// Event is a committed state transition, delivered to sinks after the ledger
// mutation it describes has been applied.
type Event interface {
	Name() string
	LoanID() uint64
}

type LoanRequested struct {
	ID           uint64 `json:"loan_id"`
	Borrower     string `json:"borrower"`
	Principal    uint64 `json:"principal"`
	DurationDays uint32 `json:"duration_days"`
}

func (e LoanRequested) Name() string   { return "loan.requested" }
func (e LoanRequested) LoanID() uint64 { return e.ID }

type LoanFunded struct {
	ID          uint64 `json:"loan_id"`
	Borrower    string `json:"borrower"`
	Lender      string `json:"lender"`
	Principal   uint64 `json:"principal"`
	LenderFee   uint64 `json:"lender_fee"`
	BorrowerFee uint64 `json:"borrower_fee"`
}

func (e LoanFunded) Name() string   { return "loan.funded" }
func (e LoanFunded) LoanID() uint64 { return e.ID }

type LoanRejected struct {
	ID       uint64 `json:"loan_id"`
	Borrower string `json:"borrower"`
}

func (e LoanRejected) Name() string   { return "loan.rejected" }
func (e LoanRejected) LoanID() uint64 { return e.ID }

type LoanRepaid struct {
	ID        uint64 `json:"loan_id"`
	Borrower  string `json:"borrower"`
	Lender    string `json:"lender"`
	Principal uint64 `json:"principal"`
}

func (e LoanRepaid) Name() string   { return "loan.repaid" }
func (e LoanRepaid) LoanID() uint64 { return e.ID }
