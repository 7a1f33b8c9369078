package settlermock

import "loanledger-backend/internal/ledger"

// Settler is a function-backed mock that satisfies ledger.Settler.
type Settler struct {
	SettleFn func(legs []ledger.Leg) error

	// Calls records every settlement attempt, including failed ones.
	Calls [][]ledger.Leg
}

func (m *Settler) Settle(legs []ledger.Leg) error {
	copied := make([]ledger.Leg, len(legs))
	copy(copied, legs)
	m.Calls = append(m.Calls, copied)
	if m.SettleFn != nil {
		return m.SettleFn(legs)
	}
	return nil
}
