package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roivest/return-calculator-backend/internal/model"
)

// MakeID returns a fresh UUID string for test rows.
func MakeID() string {
	return uuid.New().String()
}

// CalculationBuilder provides a fluent interface for creating test
// calculations.
//
// Example usage:
//
//	// Simple creation with defaults (an IRR calculation)
//	calculation := testutil.NewCalculation().Build(t, db)
//
//	// Customized calculation
//	calculation := testutil.NewCalculation().
//	    WithMode(model.ModeBlendedIRR).
//	    WithFollowOn(testutil.NewFollowOn().WithAmount(500)).
//	    Build(t, db)
type CalculationBuilder struct {
	calculation model.SavedCalculation
	followOns   []*FollowOnBuilder
	batches     []*UnitBatchBuilder
}

// NewCalculation creates a CalculationBuilder with sensible defaults.
func NewCalculation() *CalculationBuilder {
	return &CalculationBuilder{
		calculation: model.SavedCalculation{
			ID:                MakeID(),
			Name:              "Test Calculation",
			Mode:              model.ModeIRR,
			InitialInvestment: 1000,
			Outcome:           2000,
			Years:             2,
			InitialDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// WithID sets a custom ID.
func (b *CalculationBuilder) WithID(id string) *CalculationBuilder {
	b.calculation.ID = id
	return b
}

// WithName sets a custom name.
func (b *CalculationBuilder) WithName(name string) *CalculationBuilder {
	b.calculation.Name = name
	return b
}

// WithMode sets the calculation mode.
func (b *CalculationBuilder) WithMode(mode string) *CalculationBuilder {
	b.calculation.Mode = mode
	return b
}

// WithInitialInvestment sets the initial investment amount.
func (b *CalculationBuilder) WithInitialInvestment(amount float64) *CalculationBuilder {
	b.calculation.InitialInvestment = amount
	return b
}

// WithOutcome sets the outcome amount.
func (b *CalculationBuilder) WithOutcome(outcome float64) *CalculationBuilder {
	b.calculation.Outcome = outcome
	return b
}

// WithRate sets the input rate (decimal fraction).
func (b *CalculationBuilder) WithRate(rate float64) *CalculationBuilder {
	b.calculation.Rate = rate
	return b
}

// WithYears sets the duration in years.
func (b *CalculationBuilder) WithYears(years float64) *CalculationBuilder {
	b.calculation.Years = years
	return b
}

// WithUnitParameters sets the portfolio-unit pipeline parameters.
func (b *CalculationBuilder) WithUnitParameters(unitPrice, successRate, outcomePerUnit, investorShare, feePercentage float64) *CalculationBuilder {
	b.calculation.UnitPrice = unitPrice
	b.calculation.SuccessRate = successRate
	b.calculation.OutcomePerUnit = outcomePerUnit
	b.calculation.InvestorShare = investorShare
	b.calculation.FeePercentage = feePercentage
	return b
}

// WithInitialDate sets the base investment date.
func (b *CalculationBuilder) WithInitialDate(date time.Time) *CalculationBuilder {
	b.calculation.InitialDate = date
	return b
}

// WithResult sets the cached calculated result.
func (b *CalculationBuilder) WithResult(result float64) *CalculationBuilder {
	b.calculation.CalculatedResult = result
	return b
}

// WithFollowOn attaches a follow-on investment.
func (b *CalculationBuilder) WithFollowOn(followOn *FollowOnBuilder) *CalculationBuilder {
	b.followOns = append(b.followOns, followOn)
	return b
}

// WithBatch attaches a unit batch.
func (b *CalculationBuilder) WithBatch(batch *UnitBatchBuilder) *CalculationBuilder {
	b.batches = append(b.batches, batch)
	return b
}

// Build inserts the calculation and its child rows into the database and
// returns the assembled model.
func (b *CalculationBuilder) Build(t *testing.T, db *sql.DB) model.SavedCalculation {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO calculation (
			id, name, mode, initial_investment, outcome, rate, years,
			unit_price, success_rate, outcome_per_unit, investor_share, fee_percentage,
			initial_date, calculated_result
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.calculation.ID,
		b.calculation.Name,
		b.calculation.Mode,
		b.calculation.InitialInvestment,
		b.calculation.Outcome,
		b.calculation.Rate,
		b.calculation.Years,
		b.calculation.UnitPrice,
		b.calculation.SuccessRate,
		b.calculation.OutcomePerUnit,
		b.calculation.InvestorShare,
		b.calculation.FeePercentage,
		b.calculation.InitialDate.Format("2006-01-02"),
		b.calculation.CalculatedResult,
	)
	if err != nil {
		t.Fatalf("Failed to insert test calculation: %v", err)
	}

	for _, followOnBuilder := range b.followOns {
		followOn := followOnBuilder.insert(t, db, b.calculation.ID)
		b.calculation.FollowOns = append(b.calculation.FollowOns, followOn)
	}
	for _, batchBuilder := range b.batches {
		batch := batchBuilder.insert(t, db, b.calculation.ID)
		b.calculation.Batches = append(b.calculation.Batches, batch)
	}

	return b.calculation
}

// FollowOnBuilder builds follow-on investment rows for tests.
type FollowOnBuilder struct {
	followOn model.FollowOnInvestment
}

// NewFollowOn creates a FollowOnBuilder with sensible defaults: a
// tag-along buy of 500 six months after the default initial date.
func NewFollowOn() *FollowOnBuilder {
	return &FollowOnBuilder{
		followOn: model.FollowOnInvestment{
			ID:            MakeID(),
			Date:          time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			Type:          "buy",
			Amount:        500,
			ValuationMode: "tag_along",
		},
	}
}

// WithDate sets the event date.
func (b *FollowOnBuilder) WithDate(date time.Time) *FollowOnBuilder {
	b.followOn.Date = date
	return b
}

// WithType sets the event type.
func (b *FollowOnBuilder) WithType(investmentType string) *FollowOnBuilder {
	b.followOn.Type = investmentType
	return b
}

// WithAmount sets the event amount.
func (b *FollowOnBuilder) WithAmount(amount float64) *FollowOnBuilder {
	b.followOn.Amount = amount
	return b
}

// WithValuation sets the valuation policy.
func (b *FollowOnBuilder) WithValuation(mode, valuationType string, rate float64) *FollowOnBuilder {
	b.followOn.ValuationMode = mode
	b.followOn.ValuationType = valuationType
	b.followOn.Rate = rate
	return b
}

func (b *FollowOnBuilder) insert(t *testing.T, db *sql.DB, calculationID string) model.FollowOnInvestment {
	t.Helper()

	b.followOn.CalculationID = calculationID

	_, err := db.Exec(`
		INSERT INTO follow_on_investment (id, calculation_id, date, type, amount, valuation_mode, valuation_type, rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.followOn.ID,
		calculationID,
		b.followOn.Date.Format("2006-01-02"),
		b.followOn.Type,
		b.followOn.Amount,
		b.followOn.ValuationMode,
		b.followOn.ValuationType,
		b.followOn.Rate,
	)
	if err != nil {
		t.Fatalf("Failed to insert test follow-on: %v", err)
	}

	return b.followOn
}

// UnitBatchBuilder builds unit batch rows for tests.
type UnitBatchBuilder struct {
	batch model.UnitBatch
}

// NewUnitBatch creates a UnitBatchBuilder with sensible defaults.
func NewUnitBatch() *UnitBatchBuilder {
	return &UnitBatchBuilder{
		batch: model.UnitBatch{
			ID:               MakeID(),
			InvestmentAmount: 6000,
			UnitPrice:        120,
			Date:             time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// WithAmounts sets the investment amount and unit price.
func (b *UnitBatchBuilder) WithAmounts(investmentAmount, unitPrice float64) *UnitBatchBuilder {
	b.batch.InvestmentAmount = investmentAmount
	b.batch.UnitPrice = unitPrice
	return b
}

// WithDate sets the purchase date.
func (b *UnitBatchBuilder) WithDate(date time.Time) *UnitBatchBuilder {
	b.batch.Date = date
	return b
}

func (b *UnitBatchBuilder) insert(t *testing.T, db *sql.DB, calculationID string) model.UnitBatch {
	t.Helper()

	b.batch.CalculationID = calculationID

	_, err := db.Exec(`
		INSERT INTO unit_batch (id, calculation_id, investment_amount, unit_price, date)
		VALUES (?, ?, ?, ?, ?)`,
		b.batch.ID,
		calculationID,
		b.batch.InvestmentAmount,
		b.batch.UnitPrice,
		b.batch.Date.Format("2006-01-02"),
	)
	if err != nil {
		t.Fatalf("Failed to insert test unit batch: %v", err)
	}

	return b.batch
}
