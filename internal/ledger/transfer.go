package ledger

// Leg is a single outbound payment from ledger custody to a recipient.
type Leg struct {
	To     string
	Amount uint64
}

// Settler executes a multi-leg payout as one all-or-nothing unit: either every
// leg is applied, or an error is returned and no leg's effect is observable.
// A recipient may reject receipt, which fails the whole settlement.
type Settler interface {
	Settle(legs []Leg) error
}
