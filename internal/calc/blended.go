package calc

import (
	"math"
	"time"
)

// BlendedIRR combines a base investment with an ordered sequence of
// follow-on events into a single rate of return.
//
// The base investment runs from initialDate over years, turning initial
// into outcome. Each follow-on event either adds to the invested capital
// (Buy), realizes proceeds (Sell) or both (BuySell); proceeds are valued
// by the event's valuation policy. The blended rate is then the plain IRR
// over the aggregated capital and aggregated terminal value, so a single
// rate formula carries all modes and the blending lives entirely in how
// cash flows are added up.
//
// With no follow-ons this is exactly IRR(initial, outcome, years).
func BlendedIRR(initial, outcome, years float64, followOns []FollowOnInvestment, initialDate time.Time) float64 {
	if len(followOns) == 0 {
		return IRR(initial, outcome, years)
	}

	baseRate := IRR(initial, outcome, years)

	totalInvested := initial
	totalProceeds := 0.0

	for _, followOn := range sortedByDate(followOns) {
		elapsedYears := float64(monthsBetween(initialDate, followOn.Date)) / 12

		switch followOn.Type {
		case Buy:
			totalInvested += followOn.Amount
		case Sell:
			totalProceeds += sellProceeds(followOn, initial, outcome, baseRate, elapsedYears)
		case BuySell:
			totalInvested += followOn.Amount
			totalProceeds += tagAlongProceeds(followOn.Amount, initial, outcome, baseRate, elapsedYears)
		}
	}

	return IRR(totalInvested, outcome+totalProceeds, years)
}

// sellProceeds values a sell event according to its valuation policy.
func sellProceeds(followOn FollowOnInvestment, initial, outcome, baseRate, elapsedYears float64) float64 {
	if followOn.ValuationMode == Custom {
		if followOn.ValuationType == Specified {
			return followOn.Amount
		}
		// Computed: grow the amount at the event's own rate from the base
		// date to the event date, then scale by the same outcome-to-
		// current-value ratio as a tag-along sale. The base rate stands in
		// when the custom rate is degenerate.
		rate := followOn.Rate
		if rate <= -1 {
			rate = baseRate
		}
		valuation := followOn.Amount * math.Pow(1+rate, elapsedYears)
		return tagAlongProceeds(valuation, initial, outcome, baseRate, elapsedYears)
	}
	return tagAlongProceeds(followOn.Amount, initial, outcome, baseRate, elapsedYears)
}

// tagAlongProceeds scales amount by the ratio of the final outcome to the
// base investment's value at the event date, i.e. the event is assumed to
// grow at the same rate as the base investment for the remaining term.
func tagAlongProceeds(amount, initial, outcome, baseRate, elapsedYears float64) float64 {
	currentValue := initial * math.Pow(1+baseRate, elapsedYears)
	if currentValue == 0 {
		return 0
	}
	return amount * (outcome / currentValue)
}
