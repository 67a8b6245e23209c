package repository

import (
	"database/sql"
	"fmt"

	"github.com/roivest/return-calculator-backend/internal/apperrors"
	"github.com/roivest/return-calculator-backend/internal/model"
)

// CalculationRepository provides data access methods for the calculation,
// follow_on_investment and unit_batch tables. A saved calculation and its
// child rows are always written together in one transaction.
type CalculationRepository struct {
	db *sql.DB
}

// NewCalculationRepository creates a new CalculationRepository with the provided database connection.
func NewCalculationRepository(db *sql.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

const calculationColumns = `
	id, name, mode, initial_investment, outcome, rate, years,
	unit_price, success_rate, outcome_per_unit, investor_share, fee_percentage,
	initial_date, calculated_result, created_at, updated_at
`

// GetCalculations retrieves saved calculations matching the filter,
// ordered by creation time descending, with their follow-on and batch
// child rows attached. Returns an empty slice when nothing matches.
func (r *CalculationRepository) GetCalculations(filter model.CalculationFilter) ([]model.SavedCalculation, error) {
	query := `
		SELECT ` + calculationColumns + `
		FROM calculation
		WHERE 1=1
	`
	var args []any

	if filter.Mode != "" {
		query += " AND mode = ?"
		args = append(args, filter.Mode)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculation table: %w", err)
	}
	defer rows.Close()

	calculations := []model.SavedCalculation{}

	for rows.Next() {
		calculation, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calculations = append(calculations, calculation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculation table: %w", err)
	}

	for i := range calculations {
		if err := r.attachChildren(&calculations[i]); err != nil {
			return nil, err
		}
	}

	return calculations, nil
}

// GetCalculationOnID retrieves one saved calculation with its child rows.
// Returns apperrors.ErrCalculationNotFound when no row exists.
func (r *CalculationRepository) GetCalculationOnID(calculationID string) (model.SavedCalculation, error) {
	query := `
		SELECT ` + calculationColumns + `
		FROM calculation
		WHERE id = ?
	`

	row := r.db.QueryRow(query, calculationID)

	calculation, err := scanCalculation(row)
	if err == sql.ErrNoRows {
		return model.SavedCalculation{}, apperrors.ErrCalculationNotFound
	}
	if err != nil {
		return model.SavedCalculation{}, err
	}

	if err := r.attachChildren(&calculation); err != nil {
		return model.SavedCalculation{}, err
	}

	return calculation, nil
}

// CreateCalculation inserts a saved calculation and its child rows in a
// single transaction.
func (r *CalculationRepository) CreateCalculation(calculation model.SavedCalculation) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO calculation (` + calculationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	_, err = tx.Exec(query,
		calculation.ID,
		calculation.Name,
		calculation.Mode,
		calculation.InitialInvestment,
		calculation.Outcome,
		calculation.Rate,
		calculation.Years,
		calculation.UnitPrice,
		calculation.SuccessRate,
		calculation.OutcomePerUnit,
		calculation.InvestorShare,
		calculation.FeePercentage,
		calculation.InitialDate.Format("2006-01-02"),
		calculation.CalculatedResult,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	if err := insertChildren(tx, calculation); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit calculation: %w", err)
	}

	return nil
}

// UpdateCalculation rewrites a saved calculation and replaces its child
// rows. Returns apperrors.ErrCalculationNotFound when the row does not exist.
func (r *CalculationRepository) UpdateCalculation(calculation model.SavedCalculation) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
		UPDATE calculation
		SET name = ?, mode = ?, initial_investment = ?, outcome = ?, rate = ?,
		    years = ?, unit_price = ?, success_rate = ?, outcome_per_unit = ?,
		    investor_share = ?, fee_percentage = ?, initial_date = ?,
		    calculated_result = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := tx.Exec(query,
		calculation.Name,
		calculation.Mode,
		calculation.InitialInvestment,
		calculation.Outcome,
		calculation.Rate,
		calculation.Years,
		calculation.UnitPrice,
		calculation.SuccessRate,
		calculation.OutcomePerUnit,
		calculation.InvestorShare,
		calculation.FeePercentage,
		calculation.InitialDate.Format("2006-01-02"),
		calculation.CalculatedResult,
		calculation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update calculation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrCalculationNotFound
	}

	if _, err := tx.Exec(`DELETE FROM follow_on_investment WHERE calculation_id = ?`, calculation.ID); err != nil {
		return fmt.Errorf("failed to clear follow-on investments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM unit_batch WHERE calculation_id = ?`, calculation.ID); err != nil {
		return fmt.Errorf("failed to clear unit batches: %w", err)
	}

	if err := insertChildren(tx, calculation); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit calculation update: %w", err)
	}

	return nil
}

// UpdateResult writes a freshly computed result for an existing
// calculation without touching its parameters.
func (r *CalculationRepository) UpdateResult(calculationID string, result float64) error {
	query := `
		UPDATE calculation
		SET calculated_result = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	res, err := r.db.Exec(query, result, calculationID)
	if err != nil {
		return fmt.Errorf("failed to update calculated result: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrCalculationNotFound
	}

	return nil
}

// DeleteCalculation removes a saved calculation; child rows cascade.
// Returns apperrors.ErrCalculationNotFound when the row does not exist.
func (r *CalculationRepository) DeleteCalculation(calculationID string) error {
	result, err := r.db.Exec(`DELETE FROM calculation WHERE id = ?`, calculationID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrCalculationNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (model.SavedCalculation, error) {
	var calculation model.SavedCalculation
	var initialDateStr string
	var createdAtStr, updatedAtStr sql.NullString

	err := row.Scan(
		&calculation.ID,
		&calculation.Name,
		&calculation.Mode,
		&calculation.InitialInvestment,
		&calculation.Outcome,
		&calculation.Rate,
		&calculation.Years,
		&calculation.UnitPrice,
		&calculation.SuccessRate,
		&calculation.OutcomePerUnit,
		&calculation.InvestorShare,
		&calculation.FeePercentage,
		&initialDateStr,
		&calculation.CalculatedResult,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.SavedCalculation{}, err
	}
	if err != nil {
		return model.SavedCalculation{}, fmt.Errorf("failed to scan calculation table results: %w", err)
	}

	calculation.InitialDate, err = ParseTime(initialDateStr)
	if err != nil {
		return model.SavedCalculation{}, fmt.Errorf("failed to parse initial date: %w", err)
	}

	if createdAtStr.Valid {
		calculation.CreatedAt, err = ParseTimestamp(createdAtStr.String)
		if err != nil {
			return model.SavedCalculation{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
	}
	if updatedAtStr.Valid {
		calculation.UpdatedAt, err = ParseTimestamp(updatedAtStr.String)
		if err != nil {
			return model.SavedCalculation{}, fmt.Errorf("failed to parse updated_at: %w", err)
		}
	}

	return calculation, nil
}

// attachChildren loads follow-on and batch rows for a calculation, sorted
// by date ascending so the engine receives them in processing order.
func (r *CalculationRepository) attachChildren(calculation *model.SavedCalculation) error {
	followOnQuery := `
		SELECT id, calculation_id, date, type, amount, valuation_mode, valuation_type, rate
		FROM follow_on_investment
		WHERE calculation_id = ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(followOnQuery, calculation.ID)
	if err != nil {
		return fmt.Errorf("failed to query follow_on_investment table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var followOn model.FollowOnInvestment
		var dateStr string
		var valuationType sql.NullString

		err := rows.Scan(
			&followOn.ID,
			&followOn.CalculationID,
			&dateStr,
			&followOn.Type,
			&followOn.Amount,
			&followOn.ValuationMode,
			&valuationType,
			&followOn.Rate,
		)
		if err != nil {
			return fmt.Errorf("failed to scan follow_on_investment table results: %w", err)
		}

		followOn.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse follow-on date: %w", err)
		}
		followOn.ValuationType = valuationType.String

		calculation.FollowOns = append(calculation.FollowOns, followOn)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating follow_on_investment table: %w", err)
	}

	batchQuery := `
		SELECT id, calculation_id, investment_amount, unit_price, date
		FROM unit_batch
		WHERE calculation_id = ?
		ORDER BY date ASC
	`

	batchRows, err := r.db.Query(batchQuery, calculation.ID)
	if err != nil {
		return fmt.Errorf("failed to query unit_batch table: %w", err)
	}
	defer batchRows.Close()

	for batchRows.Next() {
		var batch model.UnitBatch
		var dateStr string

		err := batchRows.Scan(
			&batch.ID,
			&batch.CalculationID,
			&batch.InvestmentAmount,
			&batch.UnitPrice,
			&dateStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan unit_batch table results: %w", err)
		}

		batch.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse batch date: %w", err)
		}

		calculation.Batches = append(calculation.Batches, batch)
	}
	if err = batchRows.Err(); err != nil {
		return fmt.Errorf("error iterating unit_batch table: %w", err)
	}

	return nil
}

// insertChildren writes the follow-on and batch rows for a calculation
// inside the caller's transaction.
func insertChildren(tx *sql.Tx, calculation model.SavedCalculation) error {
	followOnQuery := `
		INSERT INTO follow_on_investment (id, calculation_id, date, type, amount, valuation_mode, valuation_type, rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, followOn := range calculation.FollowOns {
		_, err := tx.Exec(followOnQuery,
			followOn.ID,
			calculation.ID,
			followOn.Date.Format("2006-01-02"),
			followOn.Type,
			followOn.Amount,
			followOn.ValuationMode,
			followOn.ValuationType,
			followOn.Rate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert follow-on investment: %w", err)
		}
	}

	batchQuery := `
		INSERT INTO unit_batch (id, calculation_id, investment_amount, unit_price, date)
		VALUES (?, ?, ?, ?, ?)
	`

	for _, batch := range calculation.Batches {
		_, err := tx.Exec(batchQuery,
			batch.ID,
			calculation.ID,
			batch.InvestmentAmount,
			batch.UnitPrice,
			batch.Date.Format("2006-01-02"),
		)
		if err != nil {
			return fmt.Errorf("failed to insert unit batch: %w", err)
		}
	}

	return nil
}
