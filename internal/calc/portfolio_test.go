package calc_test

import (
	"testing"

	"github.com/roivest/return-calculator-backend/internal/calc"
)

// TestPortfolioUnitIRR tests the single-batch unit model.
//
// WHY: the unit pipeline chains four percentage adjustments; the worked
// example pins the whole chain (100 units, 40 succeed, 250 gross, 225 net,
// 9000 total against 10000 invested) so a broken step is visible.
func TestPortfolioUnitIRR(t *testing.T) {
	t.Run("computes the worked example", func(t *testing.T) {
		got := calc.PortfolioUnitIRR(10000, 100, 40, 500, 50, 2, 10)

		if !approxEqual(got, -0.0513167019) {
			t.Errorf("PortfolioUnitIRR = %v, want ~-0.0513167019", got)
		}
	})

	t.Run("returns zero for non-positive core inputs", func(t *testing.T) {
		cases := []struct {
			name                                string
			amount, unitPrice, years            float64
			successRate, investorShare, feePerc float64
		}{
			{"zero amount", 0, 100, 2, 40, 50, 10},
			{"zero unit price", 10000, 0, 2, 40, 50, 10},
			{"zero years", 10000, 100, 0, 40, 50, 10},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got := calc.PortfolioUnitIRR(tc.amount, tc.unitPrice, tc.successRate, 500, tc.investorShare, tc.years, tc.feePerc)
				if got != 0 {
					t.Errorf("PortfolioUnitIRR = %v, want 0", got)
				}
			})
		}
	})

	t.Run("returns zero for out-of-range percentages", func(t *testing.T) {
		cases := []struct {
			name                                string
			successRate, investorShare, feePerc float64
		}{
			{"success rate above 100", 140, 50, 10},
			{"negative success rate", -1, 50, 10},
			{"investor share above 100", 40, 101, 10},
			{"negative investor share", 40, -5, 10},
			{"fee above 100", 40, 50, 100.01},
			{"negative fee", 40, 50, -0.01},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got := calc.PortfolioUnitIRR(10000, 100, tc.successRate, 500, tc.investorShare, 2, tc.feePerc)
				if got != 0 {
					t.Errorf("PortfolioUnitIRR = %v, want 0 (no clamping)", got)
				}
			})
		}
	})

	t.Run("boundary percentages are valid", func(t *testing.T) {
		// 100% success, 100% share, 0% fee: 100 units * 500 = 50000.
		got := calc.PortfolioUnitIRR(10000, 100, 100, 500, 100, 1, 0)
		want := calc.IRR(10000, 50000, 1)

		if !approxEqual(got, want) {
			t.Errorf("PortfolioUnitIRR at boundaries = %v, want %v", got, want)
		}
	})
}

// TestPortfolioUnitBlendedIRR tests the multi-batch variant.
//
// WHY: batches pool units at differing unit prices but share one
// success/fee/share pipeline, and batch timing deliberately does not
// weight the result.
func TestPortfolioUnitBlendedIRR(t *testing.T) {
	initial := calc.UnitBatch{InvestmentAmount: 10000, UnitPrice: 100, Date: date("2024-01-01")}

	t.Run("pools units across batches at their own prices", func(t *testing.T) {
		followOns := []calc.UnitBatch{
			{InvestmentAmount: 6000, UnitPrice: 120, Date: date("2024-07-01")},
		}

		got := calc.PortfolioUnitBlendedIRR(initial, 2, 40, 500, 50, 10, followOns)

		// 150 units pooled, 60 succeed at 225 net; irr(16000, 13500, 2).
		if !approxEqual(got, -0.0814413465) {
			t.Errorf("PortfolioUnitBlendedIRR = %v, want ~-0.0814413465", got)
		}
	})

	t.Run("matches single batch when no follow-on batches exist", func(t *testing.T) {
		got := calc.PortfolioUnitBlendedIRR(initial, 2, 40, 500, 50, 10, nil)
		want := calc.PortfolioUnitIRR(10000, 100, 40, 500, 50, 2, 10)

		if !approxEqual(got, want) {
			t.Errorf("PortfolioUnitBlendedIRR without batches = %v, want %v", got, want)
		}
	})

	t.Run("batch timing does not change the result", func(t *testing.T) {
		early := []calc.UnitBatch{{InvestmentAmount: 6000, UnitPrice: 120, Date: date("2024-02-01")}}
		late := []calc.UnitBatch{{InvestmentAmount: 6000, UnitPrice: 120, Date: date("2025-12-01")}}

		a := calc.PortfolioUnitBlendedIRR(initial, 2, 40, 500, 50, 10, early)
		b := calc.PortfolioUnitBlendedIRR(initial, 2, 40, 500, 50, 10, late)

		if a != b {
			t.Errorf("batch timing changed the result: %v vs %v", a, b)
		}
	})

	t.Run("returns zero when any batch is invalid", func(t *testing.T) {
		followOns := []calc.UnitBatch{
			{InvestmentAmount: 6000, UnitPrice: 0, Date: date("2024-07-01")},
		}

		got := calc.PortfolioUnitBlendedIRR(initial, 2, 40, 500, 50, 10, followOns)

		if got != 0 {
			t.Errorf("PortfolioUnitBlendedIRR with zero-price batch = %v, want 0", got)
		}
	})

	t.Run("returns zero for out-of-range percentages", func(t *testing.T) {
		got := calc.PortfolioUnitBlendedIRR(initial, 2, 140, 500, 50, 10, nil)

		if got != 0 {
			t.Errorf("PortfolioUnitBlendedIRR with success rate 140 = %v, want 0", got)
		}
	})
}
