package testutil

import (
	"database/sql"
	"testing"

	"github.com/roivest/return-calculator-backend/internal/repository"
	"github.com/roivest/return-calculator-backend/internal/service"
)

// NewTestCalculationService wires a CalculationService against the given
// test database.
func NewTestCalculationService(t *testing.T, db *sql.DB) *service.CalculationService {
	t.Helper()

	calculationRepo := repository.NewCalculationRepository(db)

	return service.NewCalculationService(calculationRepo)
}
