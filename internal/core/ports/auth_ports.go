package ports

import (
	"context"

	"github.com/moviehub/api/internal/core/domain"
)

// PasswordHasher produces and verifies one-way salted password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when password matches hash.
	Verify(password, hash string) error
}

// TokenCodec issues and verifies signed access tokens.
type TokenCodec interface {
	Issue(user *domain.User) (string, error)
	// Decode checks structure, signature and expiry in one step and returns
	// the claims. It does not compare the subject against anything.
	Decode(token string) (*domain.AccessClaims, error)
	// Verify is Decode plus a subject equality check.
	Verify(token string, expectedSubject string) (*domain.AccessClaims, error)
}

// RefreshTokenStore manages the refresh token lifecycle. At most one token is
// active per user: Issue replaces any previous token for the same email.
type RefreshTokenStore interface {
	Issue(ctx context.Context, email string) (string, error)
	// ValidateAndRotate consumes the given token and issues a replacement.
	// Concurrent calls with the same token produce exactly one winner; the
	// rest fail with domain.ErrInvalidRefreshToken.
	ValidateAndRotate(ctx context.Context, token string) (email string, newToken string, err error)
}

// RefreshTokenRepository is the persistence collaborator behind RefreshTokenStore.
type RefreshTokenRepository interface {
	// Upsert inserts the token record, replacing any existing row for the
	// same user email.
	Upsert(ctx context.Context, token *domain.RefreshToken) error
	// TakeByHash atomically removes the row with the given hash and returns
	// it, or (nil, nil) when no such row exists.
	TakeByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
}

// AuthService orchestrates registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.AuthTokens, error)
	Login(ctx context.Context, email, password string) (*domain.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error)
}

// MailSender delivers password reset mail. Delivery itself is an external
// collaborator; the core only depends on this interface.
type MailSender interface {
	SendPasswordReset(ctx context.Context, to string, resetToken string) error
}
