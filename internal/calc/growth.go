package calc

import (
	"math"
	"time"
)

// GrowthPoint is one monthly sample of a projected portfolio value.
type GrowthPoint struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// GrowthSeries projects the monthly value of initial compounding at rate
// over years. The series has floor(years*12)+1 points, month 0 through
// the final month inclusive, with point 0 equal to initial. A non-positive
// duration or initial yields an empty series.
func GrowthSeries(initial, rate, years float64) []GrowthPoint {
	if initial <= 0 || years <= 0 {
		return nil
	}

	totalMonths := int(math.Floor(years * 12))
	points := make([]GrowthPoint, 0, totalMonths+1)

	for month := 0; month <= totalMonths; month++ {
		points = append(points, GrowthPoint{
			Month: month,
			Value: initial * math.Pow(1+rate, float64(month)/12),
		})
	}

	return points
}

// GrowthSeriesWithFollowOns projects the monthly value of the base
// investment at rate, overlaying each follow-on event from its start
// month onward. Buy and BuySell events add their value to the trajectory,
// Sell events subtract it; each overlay grows per the event's valuation
// policy, so a tag-along event tracks the base rate while a custom
// computed event tracks its own.
func GrowthSeriesWithFollowOns(initial, rate, years float64, followOns []FollowOnInvestment, initialDate time.Time) []GrowthPoint {
	points := GrowthSeries(initial, rate, years)
	if len(points) == 0 || len(followOns) == 0 {
		return points
	}

	sorted := sortedByDate(followOns)
	startMonths := make([]int, len(sorted))
	for i, followOn := range sorted {
		startMonths[i] = monthsBetween(initialDate, followOn.Date)
	}

	for i := range points {
		month := points[i].Month
		for j, followOn := range sorted {
			if startMonths[j] > month {
				continue
			}
			elapsedYears := float64(month-startMonths[j]) / 12
			term := overlayValue(followOn, rate, elapsedYears)
			if followOn.Type == Sell {
				points[i].Value -= term
			} else {
				points[i].Value += term
			}
		}
	}

	return points
}

// overlayValue is the value a follow-on event contributes to the
// trajectory elapsedYears after its start month.
func overlayValue(followOn FollowOnInvestment, baseRate, elapsedYears float64) float64 {
	if followOn.ValuationMode == Custom {
		if followOn.ValuationType == Specified {
			return followOn.Amount
		}
		rate := followOn.Rate
		if rate <= -1 {
			rate = baseRate
		}
		return followOn.Amount * math.Pow(1+rate, elapsedYears)
	}
	return followOn.Amount * math.Pow(1+baseRate, elapsedYears)
}
