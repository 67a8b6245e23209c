package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/roivest/return-calculator-backend/internal/api/request"
	"github.com/roivest/return-calculator-backend/internal/model"
)

// ValidInvestmentType contains the allowed follow-on event types.
var ValidInvestmentType = map[string]bool{
	"buy": true, "sell": true, "buysell": true,
}

// ValidValuationMode contains the allowed follow-on valuation modes.
var ValidValuationMode = map[string]bool{
	"tag_along": true, "custom": true,
}

// ValidValuationType contains the allowed custom valuation types.
var ValidValuationType = map[string]bool{
	"computed": true, "specified": true,
}

// ValidOffsetUnit contains the allowed relative-timing units.
var ValidOffsetUnit = map[string]bool{
	"days": true, "months": true, "years": true,
}

// ValidateCalculationRequest validates a calculation request for any mode.
// The engine itself signals invalid input silently by returning zero, so
// the HTTP layer validates loudly here before the engine is called.
//
// Mode-specific required fields:
//   - irr: initialInvestment > 0, outcome > 0, years > 0
//   - outcome: initialInvestment > 0, years >= 0
//   - initial: outcome > 0, years >= 0
//   - blended: as irr, plus initialDate and valid follow-ons
//   - portfolio_unit: investmentAmount/unitPrice/years > 0, percentages in [0,100]
//   - portfolio_unit_blended: as portfolio_unit, plus initialDate and valid batches
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCalculationRequest(req request.CalculationRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Mode) == "" {
		errors["mode"] = "mode is required"
	} else if !model.ValidModes[req.Mode] {
		errors["mode"] = fmt.Sprintf("invalid mode: %s", req.Mode)
	}

	switch req.Mode {
	case model.ModeIRR:
		validatePositive(errors, "initialInvestment", req.InitialInvestment)
		validatePositive(errors, "outcome", req.Outcome)
		validatePositive(errors, "years", req.Years)

	case model.ModeOutcome:
		validatePositive(errors, "initialInvestment", req.InitialInvestment)
		validateNonNegative(errors, "years", req.Years)

	case model.ModeInitialInvestment:
		validatePositive(errors, "outcome", req.Outcome)
		validateNonNegative(errors, "years", req.Years)

	case model.ModeBlendedIRR:
		validatePositive(errors, "initialInvestment", req.InitialInvestment)
		validatePositive(errors, "outcome", req.Outcome)
		validatePositive(errors, "years", req.Years)
		initialDate := validateInitialDate(errors, req.InitialDate)
		for i, followOn := range req.FollowOns {
			validateFollowOn(errors, i, followOn, initialDate)
		}

	case model.ModePortfolioUnit:
		validateUnitParameters(errors, req)

	case model.ModePortfolioUnitBlended:
		validateUnitParameters(errors, req)
		validateInitialDate(errors, req.InitialDate)
		for i, batch := range req.Batches {
			validateBatch(errors, i, batch)
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateUnitParameters(errors map[string]string, req request.CalculationRequest) {
	validatePositive(errors, "initialInvestment", req.InitialInvestment)
	validatePositive(errors, "unitPrice", req.UnitPrice)
	validatePositive(errors, "years", req.Years)
	validatePercentage(errors, "successRate", req.SuccessRate)
	validatePercentage(errors, "investorShare", req.InvestorShare)
	validatePercentage(errors, "feePercentage", req.FeePercentage)
}

func validateFollowOn(errors map[string]string, index int, followOn request.FollowOnRequest, initialDate time.Time) {
	field := func(name string) string {
		return fmt.Sprintf("followOns[%d].%s", index, name)
	}

	if !ValidInvestmentType[followOn.Type] {
		errors[field("type")] = fmt.Sprintf("invalid type: %s", followOn.Type)
	}
	if followOn.Amount <= 0 {
		errors[field("amount")] = "amount must be positive"
	}
	if !ValidValuationMode[followOn.ValuationMode] {
		errors[field("valuationMode")] = fmt.Sprintf("invalid valuation mode: %s", followOn.ValuationMode)
	}
	if followOn.ValuationMode == "custom" && !ValidValuationType[followOn.ValuationType] {
		errors[field("valuationType")] = fmt.Sprintf("invalid valuation type: %s", followOn.ValuationType)
	}

	hasDate := strings.TrimSpace(followOn.Date) != ""
	hasOffset := followOn.OffsetAmount != nil

	switch {
	case hasDate && hasOffset:
		errors[field("date")] = "date and offset are mutually exclusive"
	case !hasDate && !hasOffset:
		errors[field("date")] = "either date or offsetAmount is required"
	case hasDate:
		parsed, err := time.Parse("2006-01-02", followOn.Date)
		if err != nil {
			errors[field("date")] = err.Error()
		} else if !initialDate.IsZero() && parsed.Before(initialDate) {
			errors[field("date")] = "date must not precede the initial investment date"
		}
	case hasOffset:
		if *followOn.OffsetAmount < 0 {
			errors[field("offsetAmount")] = "offset must be non-negative"
		}
		if !ValidOffsetUnit[followOn.OffsetUnit] {
			errors[field("offsetUnit")] = fmt.Sprintf("invalid offset unit: %s", followOn.OffsetUnit)
		}
	}
}

func validateBatch(errors map[string]string, index int, batch request.UnitBatchRequest) {
	field := func(name string) string {
		return fmt.Sprintf("batches[%d].%s", index, name)
	}

	if batch.InvestmentAmount <= 0 {
		errors[field("investmentAmount")] = "investmentAmount must be positive"
	}
	if batch.UnitPrice <= 0 {
		errors[field("unitPrice")] = "unitPrice must be positive"
	}
	if strings.TrimSpace(batch.Date) == "" {
		errors[field("date")] = "date is required"
	} else if _, err := time.Parse("2006-01-02", batch.Date); err != nil {
		errors[field("date")] = err.Error()
	}
}

func validateInitialDate(errors map[string]string, value string) time.Time {
	if strings.TrimSpace(value) == "" {
		errors["initialDate"] = "initialDate is required"
		return time.Time{}
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		errors["initialDate"] = err.Error()
		return time.Time{}
	}
	return parsed
}

func validatePositive(errors map[string]string, field string, value float64) {
	if value <= 0 {
		errors[field] = field + " must be positive"
	}
}

func validateNonNegative(errors map[string]string, field string, value float64) {
	if value < 0 {
		errors[field] = field + " must be non-negative"
	}
}

func validatePercentage(errors map[string]string, field string, value float64) {
	if value < 0 || value > 100 {
		errors[field] = field + " must be between 0 and 100"
	}
}
