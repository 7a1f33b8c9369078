package ledger

import (
	"math"
	"testing"
)

func TestComputeFees_Floors(t *testing.T) {
	cases := []struct {
		name         string
		principal    uint64
		lenderBps    uint32
		borrowerBps  uint32
		wantLender   uint64
		wantBorrower uint64
	}{
		{"default rates", 1000, 100, 50, 10, 5},
		{"zero rates", 1000, 0, 0, 0, 0},
		{"floors fractional fee", 999, 100, 50, 9, 4},
		{"principal below denominator", 99, 100, 100, 0, 0},
		{"cap rate", 10_000, 1000, 1000, 1000, 1000},
		{"one unit principal", 1, 1000, 1000, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lf, bf := ComputeFees(tc.principal, tc.lenderBps, tc.borrowerBps)
			if lf != tc.wantLender || bf != tc.wantBorrower {
				t.Fatalf("ComputeFees(%d,%d,%d) = (%d,%d), want (%d,%d)",
					tc.principal, tc.lenderBps, tc.borrowerBps, lf, bf, tc.wantLender, tc.wantBorrower)
			}
		})
	}
}

func TestComputeFees_LargePrincipalNoOverflow(t *testing.T) {
	// floor(p * bps / 10000) must stay exact even where p * bps would wrap.
	p := uint64(math.MaxUint64 - 3)
	lf, _ := ComputeFees(p, 1000, 0)
	want := p / 10 // 1000 bps is exactly one tenth
	if lf != want {
		t.Fatalf("fee = %d, want %d", lf, want)
	}
}

func TestComputeFees_MatchesNaiveForSmallInputs(t *testing.T) {
	for p := uint64(0); p < 3000; p += 7 {
		for _, bps := range []uint32{0, 1, 50, 100, 999, 1000} {
			lf, _ := ComputeFees(p, bps, 0)
			if naive := p * uint64(bps) / 10_000; lf != naive {
				t.Fatalf("ComputeFees(%d,%d) = %d, want %d", p, bps, lf, naive)
			}
		}
	}
}
