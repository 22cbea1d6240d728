package models

import "math"

// AmountTolerance is the band within which two money amounts are considered
// equal. Amounts are float64 end to end, so comparisons must absorb binary
// representation error (e.g. 33.33 + 66.67 vs 100.00).
const AmountTolerance = 0.01

// AmountsEqual reports whether two amounts match within AmountTolerance.
func AmountsEqual(a, b float64) bool {
	return math.Abs(a-b) <= AmountTolerance
}

// IsZeroAmount reports whether an amount is zero within AmountTolerance.
// Used to decide when an order's pending balance is settled.
func IsZeroAmount(a float64) bool {
	return AmountsEqual(a, 0)
}
