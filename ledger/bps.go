package ledger

import "math/bits"

// BpsDenominator is the basis point scale: 10000 bps = 100%.
const BpsDenominator uint64 = 10000

// CalculateBps returns floor(amount * bps / 10000). The multiply is checked
// 64-bit, matching the on-chain convention: amounts large enough to overflow
// are a caller error, never silently wrapped.
func CalculateBps(amount uint64, bps uint16) (uint64, error) {
	hi, lo := bits.Mul64(amount, uint64(bps))
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return lo / BpsDenominator, nil
}

// WinnerAmount returns floor(prizeAmount * pct / 100) using a 128-bit
// intermediate so the multiply cannot overflow for any u64 prize amount.
func WinnerAmount(prizeAmount uint64, pct uint16) uint64 {
	hi, lo := bits.Mul64(prizeAmount, uint64(pct))
	// pct <= 100, so hi < 100 and the division cannot trap.
	quo, _ := bits.Div64(hi, lo, 100)
	return quo
}

// CheckedAdd returns a+b or ErrArithmeticOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// CheckedMul returns a*b or ErrArithmeticOverflow.
func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return lo, nil
}

// CheckedSub returns a-b or ErrArithmeticUnderflow.
func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrArithmeticUnderflow
	}
	return diff, nil
}

// saturatingSubBps is used only for charity-bps derivation, where a negative
// remainder semantically floors at zero (the minimum-charity check rejects it
// right after).
func saturatingSubBps(a, b uint16) uint16 {
	if b > a {
		return 0
	}
	return a - b
}
