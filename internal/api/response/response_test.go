package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/roivest/return-calculator-backend/internal/api/response"
)

// TestRespondJSON tests the shared JSON response writer.
func TestRespondJSON(t *testing.T) {
	t.Run("writes status, content type and body", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.RespondJSON(rec, http.StatusOK, map[string]string{"status": "healthy"})

		if rec.Code != http.StatusOK {
			t.Errorf("Status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if body["status"] != "healthy" {
			t.Errorf("Body = %v, want status=healthy", body)
		}
	})

	t.Run("nil data sends only the status code", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.RespondJSON(rec, http.StatusNoContent, nil)

		if rec.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want 204", rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", rec.Body.String())
		}
	})
}

// TestRespondError tests the structured error envelope.
func TestRespondError(t *testing.T) {
	t.Run("includes message and details", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.RespondError(rec, http.StatusBadRequest, "validation failed", map[string]string{
			"years": "years must be positive",
		})

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}

		var body struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if body.Error != "validation failed" {
			t.Errorf("Error = %q, want validation failed", body.Error)
		}
		if body.Details["years"] == "" {
			t.Errorf("Details = %v, want a years entry", body.Details)
		}
	})

	t.Run("omits empty details", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.RespondError(rec, http.StatusNotFound, "calculation not found", nil)

		if strings.Contains(rec.Body.String(), "details") {
			t.Errorf("Expected details to be omitted, got %q", rec.Body.String())
		}
	})
}
