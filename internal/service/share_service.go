package service

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/roivest/return-calculator-backend/internal/apperrors"
	"github.com/roivest/return-calculator-backend/internal/model"
	"github.com/roivest/return-calculator-backend/internal/repository"
)

// ShareService mints and resolves read-only share tokens for saved
// calculations. A token is the fernet-encrypted calculation ID; fernet's
// built-in timestamp enforces the TTL, so tokens need no server-side state.
type ShareService struct {
	calculationRepo *repository.CalculationRepository
	key             *fernet.Key
	ttl             time.Duration
}

// NewShareService creates a new ShareService
func NewShareService(calculationRepo *repository.CalculationRepository, key *fernet.Key, ttl time.Duration) *ShareService {
	return &ShareService{
		calculationRepo: calculationRepo,
		key:             key,
		ttl:             ttl,
	}
}

// ShareToken is a minted token with its expiry time.
type ShareToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateToken mints a share token for an existing calculation. Returns
// apperrors.ErrCalculationNotFound when the calculation does not exist.
func (s *ShareService) CreateToken(calculationID string) (ShareToken, error) {
	if _, err := s.calculationRepo.GetCalculationOnID(calculationID); err != nil {
		return ShareToken{}, err
	}

	token, err := fernet.EncryptAndSign([]byte(calculationID), s.key)
	if err != nil {
		return ShareToken{}, fmt.Errorf("failed to encrypt share token: %w", err)
	}

	return ShareToken{
		Token:     string(token),
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}, nil
}

// Resolve verifies a share token and returns the calculation it grants
// access to. Returns apperrors.ErrInvalidShareToken for tampered or
// expired tokens.
func (s *ShareService) Resolve(token string) (model.SavedCalculation, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if payload == nil {
		return model.SavedCalculation{}, apperrors.ErrInvalidShareToken
	}

	return s.calculationRepo.GetCalculationOnID(string(payload))
}
