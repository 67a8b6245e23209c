package request

// CalculationRequest represents the request body for computing or saving
// a calculation. Mode selects which parameter fields are read; the rest
// may be left at zero. All rates are decimal fractions.
type CalculationRequest struct {
	Name              string  `json:"name"`
	Mode              string  `json:"mode"`
	InitialInvestment float64 `json:"initialInvestment"`
	Outcome           float64 `json:"outcome"`
	Rate              float64 `json:"rate"`
	Years             float64 `json:"years"`
	UnitPrice         float64 `json:"unitPrice"`
	SuccessRate       float64 `json:"successRate"`
	OutcomePerUnit    float64 `json:"outcomePerUnit"`
	InvestorShare     float64 `json:"investorShare"`
	FeePercentage     float64 `json:"feePercentage"`
	InitialDate       string  `json:"initialDate"` // YYYY-MM-DD, required for blended modes
	IncludeGrowth     bool    `json:"includeGrowth"`

	FollowOns []FollowOnRequest  `json:"followOns,omitempty"`
	Batches   []UnitBatchRequest `json:"batches,omitempty"`
}

// FollowOnRequest represents one follow-on investment event. Timing is
// either absolute (date) or relative to the calculation's initial date
// (offsetAmount + offsetUnit); exactly one of the two must be supplied.
// Relative timing is resolved to an absolute date when the request is
// accepted and never recomputed afterwards.
type FollowOnRequest struct {
	Date          string  `json:"date,omitempty"`
	OffsetAmount  *int    `json:"offsetAmount,omitempty"`
	OffsetUnit    string  `json:"offsetUnit,omitempty"` // days, months or years
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	ValuationMode string  `json:"valuationMode"`
	ValuationType string  `json:"valuationType,omitempty"`
	Rate          float64 `json:"rate,omitempty"`
}

// UnitBatchRequest represents one follow-on unit purchase for the
// portfolio-unit-blended mode.
type UnitBatchRequest struct {
	InvestmentAmount float64 `json:"investmentAmount"`
	UnitPrice        float64 `json:"unitPrice"`
	Date             string  `json:"date"`
}
