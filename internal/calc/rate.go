// Package calc implements the investment-return calculation engine.
//
// Every function in this package is pure: no I/O, no clock reads, no
// mutation of caller data. Rates are decimal fractions (0.15 means 15%);
// percentage scaling for presentation is the caller's job. Invalid domain
// inputs produce 0.0 rather than an error, matching the behavior the
// mobile apps rely on. Callers that need user-facing validation must
// check the preconditions before calling.
package calc

import "math"

// IRR returns the annualized internal rate of return that grows initial
// into outcome over the given number of years.
//
// Requires initial > 0, outcome > 0 and years > 0; returns 0 otherwise.
func IRR(initial, outcome, years float64) float64 {
	if initial <= 0 || outcome <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(outcome/initial, 1/years) - 1
}

// FutureValue returns the value of initial after compounding at rate for
// the given number of years.
//
// Requires initial > 0 and years >= 0; returns 0 otherwise.
func FutureValue(initial, rate, years float64) float64 {
	if initial <= 0 || years < 0 {
		return 0
	}
	return initial * math.Pow(1+rate, years)
}

// PresentValue returns the amount that, compounded at rate for the given
// number of years, produces outcome.
//
// Requires outcome > 0 and years >= 0; returns 0 otherwise.
func PresentValue(outcome, rate, years float64) float64 {
	if outcome <= 0 || years < 0 {
		return 0
	}
	discount := math.Pow(1+rate, years)
	if discount == 0 {
		return 0
	}
	return outcome / discount
}
