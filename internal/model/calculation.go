package model

import "time"

// Calculation modes. Each saved calculation carries exactly one mode,
// which determines which parameter fields are meaningful.
const (
	ModeIRR                  = "irr"
	ModeOutcome              = "outcome"
	ModeInitialInvestment    = "initial"
	ModeBlendedIRR           = "blended"
	ModePortfolioUnit        = "portfolio_unit"
	ModePortfolioUnitBlended = "portfolio_unit_blended"
)

// ValidModes contains the allowed calculation mode values.
var ValidModes = map[string]bool{
	ModeIRR:                  true,
	ModeOutcome:              true,
	ModeInitialInvestment:    true,
	ModeBlendedIRR:           true,
	ModePortfolioUnit:        true,
	ModePortfolioUnitBlended: true,
}

// SavedCalculation represents a persisted calculation from the database.
// Parameter fields not used by the record's mode are stored as zero.
// CalculatedResult caches the engine output for the stored parameters and
// is regenerated whenever the parameters change.
type SavedCalculation struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Mode              string    `json:"mode"`
	InitialInvestment float64   `json:"initialInvestment"`
	Outcome           float64   `json:"outcome"`
	Rate              float64   `json:"rate"` // input rate for outcome/initial modes, decimal fraction
	Years             float64   `json:"years"`
	UnitPrice         float64   `json:"unitPrice"`
	SuccessRate       float64   `json:"successRate"`
	OutcomePerUnit    float64   `json:"outcomePerUnit"`
	InvestorShare     float64   `json:"investorShare"`
	FeePercentage     float64   `json:"feePercentage"`
	InitialDate       time.Time `json:"initialDate"`
	CalculatedResult  float64   `json:"calculatedResult"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`

	FollowOns []FollowOnInvestment `json:"followOns,omitempty"`
	Batches   []UnitBatch          `json:"batches,omitempty"`
}

// FollowOnInvestment represents a follow-on event row belonging to a
// blended calculation. Date is always absolute; relative timing supplied
// by the client is resolved against the calculation's initial date before
// the row is created, so a saved event can never drift against the clock.
type FollowOnInvestment struct {
	ID            string    `json:"id"`
	CalculationID string    `json:"calculationId"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	ValuationMode string    `json:"valuationMode"`
	ValuationType string    `json:"valuationType,omitempty"`
	Rate          float64   `json:"rate,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// UnitBatch represents one follow-on purchase of units belonging to a
// portfolio-unit-blended calculation.
type UnitBatch struct {
	ID               string    `json:"id"`
	CalculationID    string    `json:"calculationId"`
	InvestmentAmount float64   `json:"investmentAmount"`
	UnitPrice        float64   `json:"unitPrice"`
	Date             time.Time `json:"date"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// CalculationFilter for querying saved calculations.
type CalculationFilter struct {
	Mode string // empty means all modes
}
