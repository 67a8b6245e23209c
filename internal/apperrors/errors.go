package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrCalculationNotFound indicates that a saved calculation with the given ID does not exist.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrFollowOnNotFound indicates that a follow-on investment with the given ID does not exist.
	ErrFollowOnNotFound = errors.New("follow-on investment not found")

	// ErrBatchNotFound indicates that a unit batch with the given ID does not exist.
	ErrBatchNotFound = errors.New("unit batch not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidMode indicates an unknown calculation mode.
	ErrInvalidMode = errors.New("invalid calculation mode")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTiming indicates a follow-on event dated before the base
	// investment, or a negative relative offset.
	ErrInvalidTiming = errors.New("invalid follow-on timing")

	// ErrInvalidShareToken indicates a share token that failed decryption or
	// has expired.
	ErrInvalidShareToken = errors.New("invalid or expired share token")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Calculation operation errors
	ErrFailedToRetrieveCalculations = errors.New("failed to retrieve calculations")
	ErrFailedToRetrieveCalculation  = errors.New("failed to retrieve calculation")
	ErrFailedToCreateCalculation    = errors.New("failed to create calculation")
	ErrFailedToUpdateCalculation    = errors.New("failed to update calculation")
	ErrFailedToDeleteCalculation    = errors.New("failed to delete calculation")
	ErrFailedToComputeResult        = errors.New("failed to compute result")
	ErrFailedToRecompute            = errors.New("failed to recompute calculations")

	// Share token operation errors
	ErrFailedToCreateShareToken = errors.New("failed to create share token")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a follow-on row references a calculation that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
