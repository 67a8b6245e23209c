package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roivest/return-calculator-backend/internal/api/response"
	"github.com/roivest/return-calculator-backend/internal/apperrors"
	"github.com/roivest/return-calculator-backend/internal/service"
)

// ShareHandler handles HTTP requests for share-token endpoints.
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new ShareHandler with the provided service dependency.
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

// CreateToken handles POST requests to mint a read-only share token for a
// saved calculation.
//
// Endpoint: POST /api/calculation/{uuid}/share
// Response: 201 Created with the token and its expiry
// Error: 404 Not Found if the calculation does not exist
// Error: 500 Internal Server Error if token creation fails
func (h *ShareHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	calculationID := chi.URLParam(r, "uuid")

	token, err := h.shareService.CreateToken(calculationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCalculationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCalculationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateShareToken.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, token)
}

// GetShared handles GET requests that present a share token and receive
// the shared calculation read-only.
//
// Endpoint: GET /api/shared/{token}
// Response: 200 OK with the saved calculation
// Error: 401 Unauthorized for tampered or expired tokens
// Error: 404 Not Found if the calculation no longer exists
func (h *ShareHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	calculation, err := h.shareService.Resolve(token)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidShareToken):
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidShareToken.Error(), "")
		case errors.Is(err, apperrors.ErrCalculationNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCalculationNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCalculation.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, calculation)
}
