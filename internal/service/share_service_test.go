package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/roivest/return-calculator-backend/internal/apperrors"
	"github.com/roivest/return-calculator-backend/internal/repository"
	"github.com/roivest/return-calculator-backend/internal/service"
	"github.com/roivest/return-calculator-backend/internal/testutil"
)

func newTestShareService(t *testing.T, db *sql.DB, ttl time.Duration) *service.ShareService {
	t.Helper()

	key := new(fernet.Key)
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}

	return service.NewShareService(repository.NewCalculationRepository(db), key, ttl)
}

// TestShareService tests minting and resolving read-only share tokens.
//
// WHY: share tokens are the only unauthenticated read path; a token must
// resolve to exactly the calculation it was minted for and nothing else,
// and must stop working once tampered with or expired.
func TestShareService(t *testing.T) {
	t.Run("minted token resolves to its calculation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		shares := newTestShareService(t, db, time.Hour)

		created := testutil.NewCalculation().WithName("Shared deal").Build(t, db)

		token, err := shares.CreateToken(created.ID)
		if err != nil {
			t.Fatalf("CreateToken() returned unexpected error: %v", err)
		}
		if token.Token == "" {
			t.Fatal("Expected a non-empty token")
		}
		if !token.ExpiresAt.After(time.Now().UTC()) {
			t.Errorf("ExpiresAt = %v, want a future time", token.ExpiresAt)
		}

		resolved, err := shares.Resolve(token.Token)
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if resolved.ID != created.ID || resolved.Name != "Shared deal" {
			t.Errorf("Resolved calculation = %+v, want %s", resolved, created.ID)
		}
	})

	t.Run("refuses to mint for an unknown calculation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		shares := newTestShareService(t, db, time.Hour)

		_, err := shares.CreateToken(testutil.MakeID())

		if !errors.Is(err, apperrors.ErrCalculationNotFound) {
			t.Errorf("Expected ErrCalculationNotFound, got %v", err)
		}
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		shares := newTestShareService(t, db, time.Hour)

		created := testutil.NewCalculation().Build(t, db)

		token, err := shares.CreateToken(created.ID)
		if err != nil {
			t.Fatalf("CreateToken() returned unexpected error: %v", err)
		}

		_, err = shares.Resolve(token.Token + "x")

		if !errors.Is(err, apperrors.ErrInvalidShareToken) {
			t.Errorf("Expected ErrInvalidShareToken, got %v", err)
		}
	})

	t.Run("rejects a token signed with a different key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		shares := newTestShareService(t, db, time.Hour)
		otherShares := newTestShareService(t, db, time.Hour)

		created := testutil.NewCalculation().Build(t, db)

		token, err := otherShares.CreateToken(created.ID)
		if err != nil {
			t.Fatalf("CreateToken() returned unexpected error: %v", err)
		}

		_, err = shares.Resolve(token.Token)

		if !errors.Is(err, apperrors.ErrInvalidShareToken) {
			t.Errorf("Expected ErrInvalidShareToken, got %v", err)
		}
	})
}
