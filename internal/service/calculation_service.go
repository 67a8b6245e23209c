package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roivest/return-calculator-backend/internal/api/request"
	"github.com/roivest/return-calculator-backend/internal/apperrors"
	"github.com/roivest/return-calculator-backend/internal/calc"
	"github.com/roivest/return-calculator-backend/internal/model"
	"github.com/roivest/return-calculator-backend/internal/repository"
)

// CalculationResult aggregates the engine output for one request: the
// resolved rate or value plus the optional monthly growth trajectory.
type CalculationResult struct {
	Result float64            `json:"result"`
	Growth []calc.GrowthPoint `json:"growth,omitempty"`
}

// CalculationService handles calculation business logic: it validates and
// resolves incoming requests, dispatches them to the calc engine and
// manages saved calculations. The engine itself stays pure; everything
// stateful lives here.
type CalculationService struct {
	calculationRepo *repository.CalculationRepository
}

// NewCalculationService creates a new CalculationService
func NewCalculationService(calculationRepo *repository.CalculationRepository) *CalculationService {
	return &CalculationService{
		calculationRepo: calculationRepo,
	}
}

// Compute runs the engine for a request without persisting anything.
// The request must already have passed validation.
func (s *CalculationService) Compute(req request.CalculationRequest) (CalculationResult, error) {
	calculation, err := s.buildCalculation(req)
	if err != nil {
		return CalculationResult{}, err
	}

	result := computeResult(calculation)

	response := CalculationResult{Result: result}
	if req.IncludeGrowth {
		response.Growth = computeGrowth(calculation, result)
	}

	return response, nil
}

// CreateCalculation computes and persists a new saved calculation.
func (s *CalculationService) CreateCalculation(req request.CalculationRequest) (model.SavedCalculation, error) {
	calculation, err := s.buildCalculation(req)
	if err != nil {
		return model.SavedCalculation{}, err
	}

	calculation.ID = uuid.New().String()
	for i := range calculation.FollowOns {
		calculation.FollowOns[i].ID = uuid.New().String()
		calculation.FollowOns[i].CalculationID = calculation.ID
	}
	for i := range calculation.Batches {
		calculation.Batches[i].ID = uuid.New().String()
		calculation.Batches[i].CalculationID = calculation.ID
	}

	calculation.CalculatedResult = computeResult(calculation)

	if err := s.calculationRepo.CreateCalculation(calculation); err != nil {
		return model.SavedCalculation{}, fmt.Errorf("failed to persist calculation: %w", err)
	}

	return s.calculationRepo.GetCalculationOnID(calculation.ID)
}

// UpdateCalculation replaces the parameters of an existing saved
// calculation and recomputes its cached result.
func (s *CalculationService) UpdateCalculation(calculationID string, req request.CalculationRequest) (model.SavedCalculation, error) {
	calculation, err := s.buildCalculation(req)
	if err != nil {
		return model.SavedCalculation{}, err
	}

	calculation.ID = calculationID
	for i := range calculation.FollowOns {
		calculation.FollowOns[i].ID = uuid.New().String()
		calculation.FollowOns[i].CalculationID = calculationID
	}
	for i := range calculation.Batches {
		calculation.Batches[i].ID = uuid.New().String()
		calculation.Batches[i].CalculationID = calculationID
	}

	calculation.CalculatedResult = computeResult(calculation)

	if err := s.calculationRepo.UpdateCalculation(calculation); err != nil {
		return model.SavedCalculation{}, err
	}

	return s.calculationRepo.GetCalculationOnID(calculationID)
}

// GetAllCalculations retrieves saved calculations, optionally filtered by mode.
func (s *CalculationService) GetAllCalculations(mode string) ([]model.SavedCalculation, error) {
	return s.calculationRepo.GetCalculations(model.CalculationFilter{Mode: mode})
}

// GetCalculation retrieves a single saved calculation by ID.
func (s *CalculationService) GetCalculation(calculationID string) (model.SavedCalculation, error) {
	return s.calculationRepo.GetCalculationOnID(calculationID)
}

// DeleteCalculation removes a saved calculation and its child rows.
func (s *CalculationService) DeleteCalculation(calculationID string) error {
	return s.calculationRepo.DeleteCalculation(calculationID)
}

// GetGrowthSeries regenerates the monthly growth trajectory for a saved
// calculation from its stored parameters.
func (s *CalculationService) GetGrowthSeries(calculationID string) ([]calc.GrowthPoint, error) {
	calculation, err := s.calculationRepo.GetCalculationOnID(calculationID)
	if err != nil {
		return nil, err
	}

	return computeGrowth(calculation, computeResult(calculation)), nil
}

// buildCalculation converts a validated request into a saved-calculation
// value, resolving relative follow-on timing against the initial date.
// Resolution happens exactly once, here; a stored event date never drifts
// against the wall clock afterwards.
func (s *CalculationService) buildCalculation(req request.CalculationRequest) (model.SavedCalculation, error) {
	calculation := model.SavedCalculation{
		Name:              req.Name,
		Mode:              req.Mode,
		InitialInvestment: req.InitialInvestment,
		Outcome:           req.Outcome,
		Rate:              req.Rate,
		Years:             req.Years,
		UnitPrice:         req.UnitPrice,
		SuccessRate:       req.SuccessRate,
		OutcomePerUnit:    req.OutcomePerUnit,
		InvestorShare:     req.InvestorShare,
		FeePercentage:     req.FeePercentage,
	}

	if !model.ValidModes[req.Mode] {
		return model.SavedCalculation{}, apperrors.ErrInvalidMode
	}

	if req.InitialDate != "" {
		initialDate, err := time.Parse("2006-01-02", req.InitialDate)
		if err != nil {
			return model.SavedCalculation{}, fmt.Errorf("failed to parse initial date: %w", err)
		}
		calculation.InitialDate = initialDate.UTC()
	}

	for _, followOnReq := range req.FollowOns {
		followOn, err := resolveFollowOn(followOnReq, calculation.InitialDate)
		if err != nil {
			return model.SavedCalculation{}, err
		}
		calculation.FollowOns = append(calculation.FollowOns, followOn)
	}

	for _, batchReq := range req.Batches {
		batchDate, err := time.Parse("2006-01-02", batchReq.Date)
		if err != nil {
			return model.SavedCalculation{}, fmt.Errorf("failed to parse batch date: %w", err)
		}
		calculation.Batches = append(calculation.Batches, model.UnitBatch{
			InvestmentAmount: batchReq.InvestmentAmount,
			UnitPrice:        batchReq.UnitPrice,
			Date:             batchDate.UTC(),
		})
	}

	return calculation, nil
}

// resolveFollowOn turns a follow-on request into a follow-on row with an
// absolute date.
func resolveFollowOn(req request.FollowOnRequest, initialDate time.Time) (model.FollowOnInvestment, error) {
	followOn := model.FollowOnInvestment{
		Type:          req.Type,
		Amount:        req.Amount,
		ValuationMode: req.ValuationMode,
		ValuationType: req.ValuationType,
		Rate:          req.Rate,
	}

	switch {
	case req.Date != "":
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return model.FollowOnInvestment{}, fmt.Errorf("failed to parse follow-on date: %w", err)
		}
		followOn.Date = parsed.UTC()
	case req.OffsetAmount != nil:
		if *req.OffsetAmount < 0 {
			return model.FollowOnInvestment{}, apperrors.ErrInvalidTiming
		}
		switch req.OffsetUnit {
		case "days":
			followOn.Date = initialDate.AddDate(0, 0, *req.OffsetAmount)
		case "months":
			followOn.Date = initialDate.AddDate(0, *req.OffsetAmount, 0)
		case "years":
			followOn.Date = initialDate.AddDate(*req.OffsetAmount, 0, 0)
		default:
			return model.FollowOnInvestment{}, apperrors.ErrInvalidTiming
		}
	default:
		return model.FollowOnInvestment{}, apperrors.ErrInvalidTiming
	}

	if followOn.Date.Before(initialDate) {
		return model.FollowOnInvestment{}, apperrors.ErrInvalidTiming
	}

	return followOn, nil
}

// computeResult dispatches a saved calculation to the engine function for
// its mode. The engine's defensive-zero contract applies: invalid stored
// parameters yield 0 rather than an error.
func computeResult(calculation model.SavedCalculation) float64 {
	switch calculation.Mode {
	case model.ModeIRR:
		return calc.IRR(calculation.InitialInvestment, calculation.Outcome, calculation.Years)

	case model.ModeOutcome:
		return calc.FutureValue(calculation.InitialInvestment, calculation.Rate, calculation.Years)

	case model.ModeInitialInvestment:
		return calc.PresentValue(calculation.Outcome, calculation.Rate, calculation.Years)

	case model.ModeBlendedIRR:
		return calc.BlendedIRR(
			calculation.InitialInvestment,
			calculation.Outcome,
			calculation.Years,
			engineFollowOns(calculation.FollowOns),
			calculation.InitialDate,
		)

	case model.ModePortfolioUnit:
		return calc.PortfolioUnitIRR(
			calculation.InitialInvestment,
			calculation.UnitPrice,
			calculation.SuccessRate,
			calculation.OutcomePerUnit,
			calculation.InvestorShare,
			calculation.Years,
			calculation.FeePercentage,
		)

	case model.ModePortfolioUnitBlended:
		return calc.PortfolioUnitBlendedIRR(
			calc.UnitBatch{
				InvestmentAmount: calculation.InitialInvestment,
				UnitPrice:        calculation.UnitPrice,
				Date:             calculation.InitialDate,
			},
			calculation.Years,
			calculation.SuccessRate,
			calculation.OutcomePerUnit,
			calculation.InvestorShare,
			calculation.FeePercentage,
			engineBatches(calculation.Batches),
		)
	}

	return 0
}

// computeGrowth produces the monthly trajectory for a saved calculation
// given its computed result.
func computeGrowth(calculation model.SavedCalculation, result float64) []calc.GrowthPoint {
	switch calculation.Mode {
	case model.ModeIRR, model.ModePortfolioUnit:
		return calc.GrowthSeries(calculation.InitialInvestment, result, calculation.Years)

	case model.ModeOutcome:
		return calc.GrowthSeries(calculation.InitialInvestment, calculation.Rate, calculation.Years)

	case model.ModeInitialInvestment:
		// Trajectory of the computed starting amount toward the outcome.
		return calc.GrowthSeries(result, calculation.Rate, calculation.Years)

	case model.ModeBlendedIRR:
		return calc.GrowthSeriesWithFollowOns(
			calculation.InitialInvestment,
			result,
			calculation.Years,
			engineFollowOns(calculation.FollowOns),
			calculation.InitialDate,
		)

	case model.ModePortfolioUnitBlended:
		invested := calculation.InitialInvestment
		for _, batch := range calculation.Batches {
			invested += batch.InvestmentAmount
		}
		return calc.GrowthSeries(invested, result, calculation.Years)
	}

	return nil
}

func engineFollowOns(followOns []model.FollowOnInvestment) []calc.FollowOnInvestment {
	converted := make([]calc.FollowOnInvestment, len(followOns))
	for i, followOn := range followOns {
		converted[i] = calc.FollowOnInvestment{
			Date:          followOn.Date,
			Type:          calc.InvestmentType(followOn.Type),
			Amount:        followOn.Amount,
			ValuationMode: calc.ValuationMode(followOn.ValuationMode),
			ValuationType: calc.ValuationType(followOn.ValuationType),
			Rate:          followOn.Rate,
		}
	}
	return converted
}

func engineBatches(batches []model.UnitBatch) []calc.UnitBatch {
	converted := make([]calc.UnitBatch, len(batches))
	for i, batch := range batches {
		converted[i] = calc.UnitBatch{
			InvestmentAmount: batch.InvestmentAmount,
			UnitPrice:        batch.UnitPrice,
			Date:             batch.Date,
		}
	}
	return converted
}
