package calc_test

import (
	"testing"
	"time"

	"github.com/roivest/return-calculator-backend/internal/calc"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

// TestBlendedIRR tests the blended-rate aggregation across follow-on
// investment types and valuation policies.
//
// WHY: blending is where cash-flow aggregation, date arithmetic and the
// valuation policies meet; the expected values below were derived by hand
// from the published formulas so a regression in any part shows up as a
// concrete numeric drift.
func TestBlendedIRR(t *testing.T) {
	baseDate := date("2024-01-01")

	t.Run("equals plain IRR with no follow-ons", func(t *testing.T) {
		got := calc.BlendedIRR(1000, 2000, 2, nil, baseDate)
		want := calc.IRR(1000, 2000, 2)

		if got != want {
			t.Errorf("BlendedIRR(1000, 2000, 2, nil) = %v, want IRR result %v", got, want)
		}
	})

	t.Run("buy adds capital without proceeds", func(t *testing.T) {
		followOns := []calc.FollowOnInvestment{
			{
				Date:          date("2024-07-01"),
				Type:          calc.Buy,
				Amount:        500,
				ValuationMode: calc.TagAlong,
			},
		}

		got := calc.BlendedIRR(1000, 2000, 2, followOns, baseDate)

		// irr(1500, 2000, 2)
		if !approxEqual(got, 0.1547005384) {
			t.Errorf("BlendedIRR with buy 500 = %v, want ~0.1547005384", got)
		}
	})

	t.Run("tag-along sell realizes proceeds at the base growth rate", func(t *testing.T) {
		followOns := []calc.FollowOnInvestment{
			{
				Date:          date("2025-01-01"),
				Type:          calc.Sell,
				Amount:        200,
				ValuationMode: calc.TagAlong,
			},
		}

		got := calc.BlendedIRR(1000, 2000, 2, followOns, baseDate)

		// Proceeds 200*(2000/1414.2136) = 282.8427, irr(1000, 2282.8427, 2).
		if !approxEqual(got, 0.5109079100) {
			t.Errorf("BlendedIRR with tag-along sell = %v, want ~0.5109079100", got)
		}
	})

	t.Run("custom specified sell uses the amount literally", func(t *testing.T) {
		followOns := []calc.FollowOnInvestment{
			{
				Date:          date("2025-01-01"),
				Type:          calc.Sell,
				Amount:        300,
				ValuationMode: calc.Custom,
				ValuationType: calc.Specified,
			},
		}

		got := calc.BlendedIRR(1000, 2000, 2, followOns, baseDate)

		// irr(1000, 2300, 2)
		if !approxEqual(got, 0.5165750888) {
			t.Errorf("BlendedIRR with specified sell = %v, want ~0.5165750888", got)
		}
	})

	t.Run("custom computed sell grows at its own rate", func(t *testing.T) {
		followOns := []calc.FollowOnInvestment{
			{
				Date:          date("2025-01-01"),
				Type:          calc.Sell,
				Amount:        200,
				ValuationMode: calc.Custom,
				ValuationType: calc.Computed,
				Rate:          0.10,
			},
		}

		got := calc.BlendedIRR(1000, 2000, 2, followOns, baseDate)

		// Valuation 220 after one year at 10%, scaled like a tag-along sale.
		if !approxEqual(got, 0.5202391206) {
			t.Errorf("BlendedIRR with computed sell = %v, want ~0.5202391206", got)
		}
	})

	t.Run("buy-sell contributes capital and pro-rata proceeds", func(t *testing.T) {
		followOns := []calc.FollowOnInvestment{
			{
				Date:          date("2024-07-01"),
				Type:          calc.BuySell,
				Amount:        250,
				ValuationMode: calc.TagAlong,
			},
		}

		got := calc.BlendedIRR(1000, 2000, 2, followOns, baseDate)

		if !approxEqual(got, 0.3915310151) {
			t.Errorf("BlendedIRR with buy-sell = %v, want ~0.3915310151", got)
		}
	})

	t.Run("result is independent of input slice order", func(t *testing.T) {
		first := calc.FollowOnInvestment{
			Date:          date("2024-07-01"),
			Type:          calc.Sell,
			Amount:        200,
			ValuationMode: calc.TagAlong,
		}
		second := calc.FollowOnInvestment{
			Date:          date("2025-07-01"),
			Type:          calc.Sell,
			Amount:        300,
			ValuationMode: calc.Custom,
			ValuationType: calc.Computed,
			Rate:          0.20,
		}

		sorted := calc.BlendedIRR(1000, 2000, 2, []calc.FollowOnInvestment{first, second}, baseDate)
		shuffled := calc.BlendedIRR(1000, 2000, 2, []calc.FollowOnInvestment{second, first}, baseDate)

		if sorted != shuffled {
			t.Errorf("BlendedIRR changed with input order: %v vs %v", sorted, shuffled)
		}
	})

	t.Run("result depends on which event carries which date", func(t *testing.T) {
		tagAlong := calc.FollowOnInvestment{
			Type:          calc.Sell,
			Amount:        200,
			ValuationMode: calc.TagAlong,
		}
		computed := calc.FollowOnInvestment{
			Type:          calc.Sell,
			Amount:        300,
			ValuationMode: calc.Custom,
			ValuationType: calc.Computed,
			Rate:          0.20,
		}

		early, late := date("2024-07-01"), date("2025-07-01")

		tagAlong.Date, computed.Date = early, late
		a := calc.BlendedIRR(1000, 2000, 2, []calc.FollowOnInvestment{tagAlong, computed}, baseDate)

		tagAlong.Date, computed.Date = late, early
		b := calc.BlendedIRR(1000, 2000, 2, []calc.FollowOnInvestment{tagAlong, computed}, baseDate)

		if approxEqual(a, b) {
			t.Errorf("expected date assignment to change the blended rate, got %v both times", a)
		}
		if !approxEqual(a, 0.6749133025) {
			t.Errorf("tag-along early / computed late = %v, want ~0.6749133025", a)
		}
		if !approxEqual(b, 0.6704894328) {
			t.Errorf("tag-along late / computed early = %v, want ~0.6704894328", b)
		}
	})

	t.Run("does not mutate the caller's slice", func(t *testing.T) {
		followOns := []calc.FollowOnInvestment{
			{Date: date("2025-07-01"), Type: calc.Buy, Amount: 100, ValuationMode: calc.TagAlong},
			{Date: date("2024-07-01"), Type: calc.Buy, Amount: 50, ValuationMode: calc.TagAlong},
		}

		calc.BlendedIRR(1000, 2000, 2, followOns, baseDate)

		if !followOns[0].Date.After(followOns[1].Date) {
			t.Error("BlendedIRR reordered the caller's slice")
		}
	})
}
