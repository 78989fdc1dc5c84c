package calculator

import "math"

// Cents is a money amount in minor currency units.
//
// All ledger arithmetic happens in Cents so that repeated accumulation of
// float amounts cannot drift; values convert back to decimal only at the
// presentation boundary.
type Cents int64

// CentsOf converts a decimal amount to Cents, rounding half away from zero.
func CentsOf(amount float64) Cents {
	if amount < 0 {
		return -CentsOf(-amount)
	}
	return Cents(math.Floor(amount*100 + 0.5))
}

// Float returns the decimal value for presentation.
func (c Cents) Float() float64 {
	return float64(c) / 100
}
