package vault

import (
	"errors"
	"testing"

	"loanledger-backend/internal/ledger"
)

const (
	alice    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	bob      = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	treasury = "ffffffffffffffffffffffffffffffff"
)

func TestSettle_CreditsEveryLeg(t *testing.T) {
	v := New()
	err := v.Settle([]ledger.Leg{
		{To: treasury, Amount: 10},
		{To: alice, Amount: 995},
		{To: treasury, Amount: 5},
	})
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if got := v.Balance(alice); got != 995 {
		t.Fatalf("alice = %d, want 995", got)
	}
	if got := v.Balance(treasury); got != 15 {
		t.Fatalf("treasury = %d, want 15", got)
	}
}

func TestSettle_HookSeesAmount(t *testing.T) {
	v := New()
	var seen []uint64
	v.SetReceiveHook(alice, func(amount uint64) error {
		seen = append(seen, amount)
		return nil
	})
	if err := v.Settle([]ledger.Leg{{To: alice, Amount: 7}, {To: alice, Amount: 3}}); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if len(seen) != 2 || seen[0] != 7 || seen[1] != 3 {
		t.Fatalf("hook amounts = %v", seen)
	}
	if got := v.Balance(alice); got != 10 {
		t.Fatalf("alice = %d, want 10", got)
	}
}

func TestSettle_RejectionUndoesAllLegs(t *testing.T) {
	v := New()
	rejected := errors.New("no thanks")
	v.SetReceiveHook(bob, func(amount uint64) error { return rejected })

	err := v.Settle([]ledger.Leg{
		{To: treasury, Amount: 10},
		{To: alice, Amount: 100},
		{To: bob, Amount: 50},
	})
	if err == nil || !errors.Is(err, rejected) {
		t.Fatalf("Settle err = %v, want wrapped rejection", err)
	}
	if v.Balance(treasury) != 0 || v.Balance(alice) != 0 || v.Balance(bob) != 0 {
		t.Fatalf("balances not rolled back: treasury=%d alice=%d bob=%d",
			v.Balance(treasury), v.Balance(alice), v.Balance(bob))
	}
}

func TestSettle_HookMayReadBalances(t *testing.T) {
	v := New()
	var observed uint64
	v.SetReceiveHook(alice, func(amount uint64) error {
		// the leg being received is already visible
		observed = v.Balance(alice)
		return nil
	})
	if err := v.Settle([]ledger.Leg{{To: alice, Amount: 42}}); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if observed != 42 {
		t.Fatalf("hook observed %d, want 42", observed)
	}
}

func TestSetReceiveHook_NilRemoves(t *testing.T) {
	v := New()
	v.SetReceiveHook(alice, func(uint64) error { return errors.New("reject") })
	v.SetReceiveHook(alice, nil)
	if err := v.Settle([]ledger.Leg{{To: alice, Amount: 1}}); err != nil {
		t.Fatalf("Settle after hook removal: %v", err)
	}
}

func TestSettle_BalancesAccumulateAcrossSettlements(t *testing.T) {
	v := New()
	for i := 0; i < 3; i++ {
		if err := v.Settle([]ledger.Leg{{To: alice, Amount: 5}}); err != nil {
			t.Fatalf("Settle: %v", err)
		}
	}
	if got := v.Balance(alice); got != 15 {
		t.Fatalf("alice = %d, want 15", got)
	}
}
