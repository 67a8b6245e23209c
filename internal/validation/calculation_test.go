package validation_test

import (
	"errors"
	"testing"

	"github.com/roivest/return-calculator-backend/internal/api/request"
	"github.com/roivest/return-calculator-backend/internal/model"
	"github.com/roivest/return-calculator-backend/internal/validation"
)

func intPtr(v int) *int {
	return &v
}

// fieldErrors runs the validator and returns the per-field messages,
// failing the test if the error is not a validation error.
func fieldErrors(t *testing.T, req request.CalculationRequest) map[string]string {
	t.Helper()

	err := validation.ValidateCalculationRequest(req)
	if err == nil {
		t.Fatal("Expected a validation error, got nil")
	}

	var validationErr *validation.Error
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected *validation.Error, got %T", err)
	}
	return validationErr.Fields
}

// TestValidateCalculationRequest tests the per-mode request validation.
//
// WHY: the engine signals bad input silently by returning zero, so this
// validator is the only place a client learns which field was wrong.
func TestValidateCalculationRequest(t *testing.T) {
	t.Run("accepts a valid irr request", func(t *testing.T) {
		err := validation.ValidateCalculationRequest(request.CalculationRequest{
			Mode:              model.ModeIRR,
			InitialInvestment: 100,
			Outcome:           150,
			Years:             2,
		})

		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("requires a mode", func(t *testing.T) {
		fields := fieldErrors(t, request.CalculationRequest{})

		if _, ok := fields["mode"]; !ok {
			t.Errorf("Expected a mode error, got %v", fields)
		}
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		fields := fieldErrors(t, request.CalculationRequest{Mode: "npv"})

		if _, ok := fields["mode"]; !ok {
			t.Errorf("Expected a mode error, got %v", fields)
		}
	})

	t.Run("irr mode requires positive parameters", func(t *testing.T) {
		fields := fieldErrors(t, request.CalculationRequest{
			Mode:              model.ModeIRR,
			InitialInvestment: 0,
			Outcome:           -1,
			Years:             0,
		})

		for _, field := range []string{"initialInvestment", "outcome", "years"} {
			if _, ok := fields[field]; !ok {
				t.Errorf("Expected an error for %s, got %v", field, fields)
			}
		}
	})

	t.Run("outcome mode allows zero years", func(t *testing.T) {
		err := validation.ValidateCalculationRequest(request.CalculationRequest{
			Mode:              model.ModeOutcome,
			InitialInvestment: 100,
			Rate:              0.10,
			Years:             0,
		})

		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("blended mode requires an initial date", func(t *testing.T) {
		fields := fieldErrors(t, request.CalculationRequest{
			Mode:              model.ModeBlendedIRR,
			InitialInvestment: 1000,
			Outcome:           2000,
			Years:             2,
		})

		if _, ok := fields["initialDate"]; !ok {
			t.Errorf("Expected an initialDate error, got %v", fields)
		}
	})

	t.Run("portfolio unit mode bounds percentages", func(t *testing.T) {
		fields := fieldErrors(t, request.CalculationRequest{
			Mode:              model.ModePortfolioUnit,
			InitialInvestment: 10000,
			UnitPrice:         100,
			Years:             2,
			SuccessRate:       140,
			InvestorShare:     -5,
			FeePercentage:     10,
		})

		for _, field := range []string{"successRate", "investorShare"} {
			if _, ok := fields[field]; !ok {
				t.Errorf("Expected an error for %s, got %v", field, fields)
			}
		}
		if _, ok := fields["feePercentage"]; ok {
			t.Errorf("Did not expect a feePercentage error, got %v", fields)
		}
	})
}

// TestValidateCalculationRequest_FollowOns tests follow-on field
// validation within a blended request.
func TestValidateCalculationRequest_FollowOns(t *testing.T) {
	blended := func(followOns ...request.FollowOnRequest) request.CalculationRequest {
		return request.CalculationRequest{
			Mode:              model.ModeBlendedIRR,
			InitialInvestment: 1000,
			Outcome:           2000,
			Years:             2,
			InitialDate:       "2024-01-01",
			FollowOns:         followOns,
		}
	}

	t.Run("accepts a valid tag-along follow-on", func(t *testing.T) {
		err := validation.ValidateCalculationRequest(blended(request.FollowOnRequest{
			Date: "2024-07-01", Type: "buy", Amount: 500, ValuationMode: "tag_along",
		}))

		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts a relative offset follow-on", func(t *testing.T) {
		err := validation.ValidateCalculationRequest(blended(request.FollowOnRequest{
			OffsetAmount: intPtr(6), OffsetUnit: "months",
			Type: "buy", Amount: 500, ValuationMode: "tag_along",
		}))

		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects date and offset together", func(t *testing.T) {
		fields := fieldErrors(t, blended(request.FollowOnRequest{
			Date: "2024-07-01", OffsetAmount: intPtr(6), OffsetUnit: "months",
			Type: "buy", Amount: 500, ValuationMode: "tag_along",
		}))

		if _, ok := fields["followOns[0].date"]; !ok {
			t.Errorf("Expected a date error, got %v", fields)
		}
	})

	t.Run("rejects missing timing", func(t *testing.T) {
		fields := fieldErrors(t, blended(request.FollowOnRequest{
			Type: "buy", Amount: 500, ValuationMode: "tag_along",
		}))

		if _, ok := fields["followOns[0].date"]; !ok {
			t.Errorf("Expected a date error, got %v", fields)
		}
	})

	t.Run("rejects a date before the initial date", func(t *testing.T) {
		fields := fieldErrors(t, blended(request.FollowOnRequest{
			Date: "2023-06-01", Type: "buy", Amount: 500, ValuationMode: "tag_along",
		}))

		if _, ok := fields["followOns[0].date"]; !ok {
			t.Errorf("Expected a date error, got %v", fields)
		}
	})

	t.Run("rejects an invalid offset unit", func(t *testing.T) {
		fields := fieldErrors(t, blended(request.FollowOnRequest{
			OffsetAmount: intPtr(6), OffsetUnit: "weeks",
			Type: "buy", Amount: 500, ValuationMode: "tag_along",
		}))

		if _, ok := fields["followOns[0].offsetUnit"]; !ok {
			t.Errorf("Expected an offsetUnit error, got %v", fields)
		}
	})

	t.Run("custom valuation requires a valuation type", func(t *testing.T) {
		fields := fieldErrors(t, blended(request.FollowOnRequest{
			Date: "2024-07-01", Type: "sell", Amount: 200, ValuationMode: "custom",
		}))

		if _, ok := fields["followOns[0].valuationType"]; !ok {
			t.Errorf("Expected a valuationType error, got %v", fields)
		}
	})

	t.Run("indexes errors per follow-on", func(t *testing.T) {
		fields := fieldErrors(t, blended(
			request.FollowOnRequest{Date: "2024-07-01", Type: "buy", Amount: 500, ValuationMode: "tag_along"},
			request.FollowOnRequest{Date: "2024-08-01", Type: "steal", Amount: -1, ValuationMode: "tag_along"},
		))

		if _, ok := fields["followOns[1].type"]; !ok {
			t.Errorf("Expected a type error on the second follow-on, got %v", fields)
		}
		if _, ok := fields["followOns[1].amount"]; !ok {
			t.Errorf("Expected an amount error on the second follow-on, got %v", fields)
		}
	})
}

// TestValidateCalculationRequest_Batches tests unit-batch validation for
// the portfolio-unit-blended mode.
func TestValidateCalculationRequest_Batches(t *testing.T) {
	unitBlended := func(batches ...request.UnitBatchRequest) request.CalculationRequest {
		return request.CalculationRequest{
			Mode:              model.ModePortfolioUnitBlended,
			InitialInvestment: 10000,
			UnitPrice:         100,
			SuccessRate:       40,
			OutcomePerUnit:    500,
			InvestorShare:     50,
			FeePercentage:     10,
			Years:             2,
			InitialDate:       "2024-01-01",
			Batches:           batches,
		}
	}

	t.Run("accepts a valid batch", func(t *testing.T) {
		err := validation.ValidateCalculationRequest(unitBlended(request.UnitBatchRequest{
			InvestmentAmount: 6000, UnitPrice: 120, Date: "2024-07-01",
		}))

		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects non-positive amounts and missing date", func(t *testing.T) {
		fields := fieldErrors(t, unitBlended(request.UnitBatchRequest{
			InvestmentAmount: 0, UnitPrice: -10,
		}))

		for _, field := range []string{"batches[0].investmentAmount", "batches[0].unitPrice", "batches[0].date"} {
			if _, ok := fields[field]; !ok {
				t.Errorf("Expected an error for %s, got %v", field, fields)
			}
		}
	})

	t.Run("rejects a malformed batch date", func(t *testing.T) {
		fields := fieldErrors(t, unitBlended(request.UnitBatchRequest{
			InvestmentAmount: 6000, UnitPrice: 120, Date: "07/01/2024",
		}))

		if _, ok := fields["batches[0].date"]; !ok {
			t.Errorf("Expected a date error, got %v", fields)
		}
	})
}
