package calc

import "time"

// UnitBatch is one purchase of fractional units (leads, royalties and the
// like) at a point in time. InvestmentAmount and UnitPrice must both be
// positive for the batch to contribute units.
type UnitBatch struct {
	InvestmentAmount float64
	UnitPrice        float64
	Date             time.Time
}

// PortfolioUnitIRR computes the rate of return for a single batch of
// units under the success-rate-weighted unit model: capital buys
// amount/unitPrice units, successRate percent of them pay out
// outcomePerUnit, the investor keeps investorShare percent of that, net
// of feePercentage percent in fees.
//
// successRate, investorShare and feePercentage are percentages and must
// each lie in [0,100]; out-of-range values make the whole calculation
// invalid (result 0), they are not clamped. investmentAmount, unitPrice
// and years must be positive.
func PortfolioUnitIRR(investmentAmount, unitPrice, successRate, outcomePerUnit, investorShare, years, feePercentage float64) float64 {
	if investmentAmount <= 0 || unitPrice <= 0 || years <= 0 {
		return 0
	}
	if !validPercentage(successRate) || !validPercentage(investorShare) || !validPercentage(feePercentage) {
		return 0
	}

	units := investmentAmount / unitPrice
	totalOutcome := unitPoolOutcome(units, successRate, outcomePerUnit, investorShare, feePercentage)

	return IRR(investmentAmount, totalOutcome, years)
}

// PortfolioUnitBlendedIRR computes one rate over an initial batch plus
// follow-on batches. Each batch converts its own amount at its own unit
// price; the success/fee/share pipeline then runs once over the combined
// unit pool. Batch timing does not weight the result — batches differ
// only in unit price.
func PortfolioUnitBlendedIRR(initialBatch UnitBatch, years, successRate, outcomePerUnit, investorShare, feePercentage float64, followOnBatches []UnitBatch) float64 {
	if initialBatch.InvestmentAmount <= 0 || initialBatch.UnitPrice <= 0 || years <= 0 {
		return 0
	}
	if !validPercentage(successRate) || !validPercentage(investorShare) || !validPercentage(feePercentage) {
		return 0
	}

	totalInvested := initialBatch.InvestmentAmount
	totalUnits := initialBatch.InvestmentAmount / initialBatch.UnitPrice

	for _, batch := range followOnBatches {
		if batch.InvestmentAmount <= 0 || batch.UnitPrice <= 0 {
			return 0
		}
		totalInvested += batch.InvestmentAmount
		totalUnits += batch.InvestmentAmount / batch.UnitPrice
	}

	totalOutcome := unitPoolOutcome(totalUnits, successRate, outcomePerUnit, investorShare, feePercentage)

	return IRR(totalInvested, totalOutcome, years)
}

// unitPoolOutcome applies the success-rate, investor-share and fee
// pipeline to a pool of units.
func unitPoolOutcome(units, successRate, outcomePerUnit, investorShare, feePercentage float64) float64 {
	successfulUnits := units * successRate / 100
	grossPerUnit := outcomePerUnit * investorShare / 100
	netPerUnit := grossPerUnit * (1 - feePercentage/100)
	return successfulUnits * netPerUnit
}

func validPercentage(value float64) bool {
	return value >= 0 && value <= 100
}
