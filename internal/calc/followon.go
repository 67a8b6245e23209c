package calc

import (
	"sort"
	"time"
)

// InvestmentType classifies a follow-on cash-flow event.
type InvestmentType string

const (
	// Buy contributes additional capital to the position.
	Buy InvestmentType = "buy"
	// Sell realizes part of the position as proceeds.
	Sell InvestmentType = "sell"
	// BuySell contributes capital and realizes pro-rata proceeds in the
	// same event.
	BuySell InvestmentType = "buysell"
)

// ValuationMode selects how a follow-on event is valued relative to the
// base investment.
type ValuationMode string

const (
	// TagAlong values the event at the base investment's growth rate.
	TagAlong ValuationMode = "tag_along"
	// Custom values the event independently of the base investment.
	Custom ValuationMode = "custom"
)

// ValuationType refines Custom valuation.
type ValuationType string

const (
	// Computed derives the event's valuation from its own rate and the
	// time elapsed since the base investment.
	Computed ValuationType = "computed"
	// Specified uses the event amount as the valuation literally.
	Specified ValuationType = "specified"
)

// FollowOnInvestment is a single buy/sell/buy-sell event occurring after
// the base investment. Date is always absolute: relative timing is
// resolved against the base investment date before the engine is called,
// never against the current wall clock.
type FollowOnInvestment struct {
	Date          time.Time
	Type          InvestmentType
	Amount        float64
	ValuationMode ValuationMode
	ValuationType ValuationType
	// Rate is the event's own annual growth rate, used only when
	// ValuationMode is Custom and ValuationType is Computed.
	Rate float64
}

// sortedByDate returns a copy of the follow-on list ordered by ascending
// date. Ordering is load-bearing: custom valuations interact with the
// shared base rate, so results are not permutation-invariant.
func sortedByDate(followOns []FollowOnInvestment) []FollowOnInvestment {
	sorted := make([]FollowOnInvestment, len(followOns))
	copy(sorted, followOns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// monthsBetween returns the number of whole calendar months from start to
// end, clamped to zero when end precedes start. Days within the month are
// ignored, matching the month-granular growth series.
func monthsBetween(start, end time.Time) int {
	startYear, startMonth, _ := start.Date()
	endYear, endMonth, _ := end.Date()

	months := (endYear-startYear)*12 + int(endMonth) - int(startMonth)
	if months < 0 {
		return 0
	}
	return months
}
