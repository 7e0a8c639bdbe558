package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/moviehub/api/internal/core/domain"
	"github.com/moviehub/api/internal/core/ports"
)

// RefreshTokenService issues opaque refresh tokens and rotates them on use.
// The at-most-one-active-per-user invariant is enforced by the repository:
// Upsert is keyed by user email and TakeByHash removes the row atomically,
// so concurrent rotations of the same token have exactly one winner.
type RefreshTokenService struct {
	repo ports.RefreshTokenRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewRefreshTokenService(repo ports.RefreshTokenRepository, ttl time.Duration, now func() time.Time) *RefreshTokenService {
	if now == nil {
		now = time.Now
	}
	return &RefreshTokenService{repo: repo, ttl: ttl, now: now}
}

func (s *RefreshTokenService) Issue(ctx context.Context, email string) (string, error) {
	value, err := generateTokenValue()
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := &domain.RefreshToken{
		UserEmail: email,
		TokenHash: hashTokenValue(value),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return value, nil
}

func (s *RefreshTokenService) ValidateAndRotate(ctx context.Context, token string) (string, string, error) {
	record, err := s.repo.TakeByHash(ctx, hashTokenValue(token))
	if err != nil {
		return "", "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if record == nil {
		return "", "", domain.ErrInvalidRefreshToken
	}
	// Taking the row already removed it, so an expired token is cleaned up
	// simply by not issuing a replacement.
	if record.ExpiresAt.Before(s.now()) {
		return "", "", domain.ErrInvalidRefreshToken
	}

	next, err := s.Issue(ctx, record.UserEmail)
	if err != nil {
		return "", "", err
	}
	return record.UserEmail, next, nil
}

func generateTokenValue() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashTokenValue returns the sha256 hex digest stored in place of the raw
// token value.
func hashTokenValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

var _ ports.RefreshTokenStore = (*RefreshTokenService)(nil)
