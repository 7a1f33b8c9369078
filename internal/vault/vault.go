// Package vault is the in-memory settlement backend for the loan ledger. It
// tracks the balance each account has received out of ledger custody and lets
// callers attach per-account receive hooks, which stand in for the recipient
// acknowledgement step of a real payment rail: a hook error rejects the
// receipt and rolls back every leg of the settlement.
package vault

import (
	"fmt"
	"sync"

	"loanledger-backend/internal/ledger"
)

// ReceiveHook runs when an account is credited. Returning an error rejects
// the receipt. Hooks run outside the vault's lock, so they may read balances
// and engine settings; state-changing calls back into the engine are refused
// by its re-entrancy guard.
type ReceiveHook func(amount uint64) error

type Vault struct {
	mu       sync.Mutex
	balances map[string]uint64
	hooks    map[string]ReceiveHook
}

func New() *Vault {
	return &Vault{
		balances: make(map[string]uint64),
		hooks:    make(map[string]ReceiveHook),
	}
}

// Settle credits each leg in order. If any recipient's hook rejects, every
// credit applied so far is undone and the error is returned; no partial
// payout survives.
func (v *Vault) Settle(legs []ledger.Leg) error {
	for i, leg := range legs {
		v.credit(leg.To, leg.Amount)
		if hook := v.hookFor(leg.To); hook != nil {
			if err := hook(leg.Amount); err != nil {
				v.undo(legs[:i+1])
				return fmt.Errorf("recipient %s rejected %d: %w", leg.To, leg.Amount, err)
			}
		}
	}
	return nil
}

// Balance returns the total amount the account has received.
func (v *Vault) Balance(account string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balances[account]
}

// SetReceiveHook attaches (or, with nil, removes) the account's receive hook.
func (v *Vault) SetReceiveHook(account string, hook ReceiveHook) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if hook == nil {
		delete(v.hooks, account)
		return
	}
	v.hooks[account] = hook
}

func (v *Vault) credit(account string, amount uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances[account] += amount
}

func (v *Vault) hookFor(account string) ReceiveHook {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hooks[account]
}

func (v *Vault) undo(legs []ledger.Leg) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, leg := range legs {
		v.balances[leg.To] -= leg.Amount
	}
}
