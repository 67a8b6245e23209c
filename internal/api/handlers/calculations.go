package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roivest/return-calculator-backend/internal/api/request"
	"github.com/roivest/return-calculator-backend/internal/api/response"
	"github.com/roivest/return-calculator-backend/internal/apperrors"
	"github.com/roivest/return-calculator-backend/internal/model"
	"github.com/roivest/return-calculator-backend/internal/service"
	"github.com/roivest/return-calculator-backend/internal/validation"
)

// CalculationHandler handles HTTP requests for calculation endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the calculationService.
type CalculationHandler struct {
	calculationService   *service.CalculationService
	recomputeConcurrency int
}

// NewCalculationHandler creates a new CalculationHandler with the provided service dependency.
func NewCalculationHandler(calculationService *service.CalculationService, recomputeConcurrency int) *CalculationHandler {
	return &CalculationHandler{
		calculationService:   calculationService,
		recomputeConcurrency: recomputeConcurrency,
	}
}

// Compute handles POST requests to run a calculation without saving it.
// The request names a mode plus its parameters; the response carries the
// resolved rate or value and, when requested, the growth series.
//
// Endpoint: POST /api/calculate
// Response: 200 OK with CalculationResult
// Error: 400 Bad Request on malformed JSON or failed validation
// Error: 422 Unprocessable Entity on invalid follow-on timing
func (h *CalculationHandler) Compute(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCalculationRequest(w, r)
	if !ok {
		return
	}

	result, err := h.calculationService.Compute(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTiming) {
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidTiming.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeResult.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// CreateCalculation handles POST requests to create a saved calculation.
// The result is computed once at creation and stored with the parameters.
//
// Endpoint: POST /api/calculation
// Response: 201 Created with the saved calculation
// Error: 400 Bad Request on malformed JSON or failed validation
// Error: 500 Internal Server Error if persistence fails
func (h *CalculationHandler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCalculationRequest(w, r)
	if !ok {
		return
	}

	calculation, err := h.calculationService.CreateCalculation(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTiming) {
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidTiming.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateCalculation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, calculation)
}

// AllCalculations handles GET requests to list saved calculations.
// Accepts an optional ?mode= query parameter to filter by calculation mode.
//
// Endpoint: GET /api/calculation
// Response: 200 OK with array of saved calculations
// Error: 400 Bad Request for an unknown mode filter
// Error: 500 Internal Server Error if retrieval fails
func (h *CalculationHandler) AllCalculations(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != "" && !model.ValidModes[mode] {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidMode.Error(), mode)
		return
	}

	calculations, err := h.calculationService.GetAllCalculations(mode)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCalculations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, calculations)
}

// GetCalculation handles GET requests to retrieve a single saved calculation.
//
// Endpoint: GET /api/calculation/{uuid}
// Response: 200 OK with the saved calculation
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the calculation does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *CalculationHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	calculationID := chi.URLParam(r, "uuid")

	calculation, err := h.calculationService.GetCalculation(calculationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCalculationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCalculationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCalculation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, calculation)
}

// UpdateCalculation handles PUT requests to replace a saved calculation's
// parameters. The cached result is recomputed from the new parameters.
//
// Endpoint: PUT /api/calculation/{uuid}
// Response: 200 OK with the updated calculation
// Error: 400 Bad Request on malformed JSON or failed validation
// Error: 404 Not Found if the calculation does not exist
// Error: 500 Internal Server Error if the update fails
func (h *CalculationHandler) UpdateCalculation(w http.ResponseWriter, r *http.Request) {
	calculationID := chi.URLParam(r, "uuid")

	req, ok := decodeCalculationRequest(w, r)
	if !ok {
		return
	}

	calculation, err := h.calculationService.UpdateCalculation(calculationID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCalculationNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCalculationNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidTiming):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidTiming.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateCalculation.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, calculation)
}

// DeleteCalculation handles DELETE requests to remove a saved calculation.
//
// Endpoint: DELETE /api/calculation/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the calculation does not exist
// Error: 500 Internal Server Error if the delete fails
func (h *CalculationHandler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	calculationID := chi.URLParam(r, "uuid")

	if err := h.calculationService.DeleteCalculation(calculationID); err != nil {
		if errors.Is(err, apperrors.ErrCalculationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCalculationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteCalculation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// GrowthSeries handles GET requests for a saved calculation's monthly
// growth trajectory, regenerated from its stored parameters.
//
// Endpoint: GET /api/calculation/{uuid}/growth
// Response: 200 OK with array of growth points
// Error: 404 Not Found if the calculation does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *CalculationHandler) GrowthSeries(w http.ResponseWriter, r *http.Request) {
	calculationID := chi.URLParam(r, "uuid")

	points, err := h.calculationService.GetGrowthSeries(calculationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCalculationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCalculationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCalculation.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// Recompute handles POST requests to re-run the engine over all saved
// calculations. Guarded by the API key middleware.
//
// Endpoint: POST /api/calculation/recompute
// Response: 200 OK with a recompute summary
// Error: 500 Internal Server Error if the recompute fails
func (h *CalculationHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	summary, err := h.calculationService.RecomputeAll(context.Background(), h.recomputeConcurrency)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecompute.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// decodeCalculationRequest parses and validates the request body, writing
// the error response itself when the body is unusable.
func decodeCalculationRequest(w http.ResponseWriter, r *http.Request) (request.CalculationRequest, bool) {
	var req request.CalculationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return request.CalculationRequest{}, false
	}

	if err := validation.ValidateCalculationRequest(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return request.CalculationRequest{}, false
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return request.CalculationRequest{}, false
	}

	return req, true
}
