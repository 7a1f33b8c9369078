package ledger

// Fee rates are expressed in basis points of the principal.
const (
	FeeDenominator = 10_000
	// MaxFeeBps caps each configurable rate at 10%. Enforced by the admin
	// setter, not by ComputeFees.
	MaxFeeBps = 1_000
)

// ComputeFees returns the lender and borrower fees for a principal, each
// floored. Pure; callers must keep rates within [0, MaxFeeBps].
func ComputeFees(principal uint64, lenderFeeBps, borrowerFeeBps uint32) (lenderFee, borrowerFee uint64) {
	return feeFloor(principal, lenderFeeBps), feeFloor(principal, borrowerFeeBps)
}

// feeFloor computes floor(principal * bps / FeeDenominator) without overflow:
// with p = q*10000 + r the product splits into q*bps + r*bps/10000 exactly.
func feeFloor(principal uint64, bps uint32) uint64 {
	q := principal / FeeDenominator
	r := principal % FeeDenominator
	return q*uint64(bps) + r*uint64(bps)/FeeDenominator
}
