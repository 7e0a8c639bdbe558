package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moviehub/api/internal/core/domain"
	"github.com/moviehub/api/internal/core/ports"
)

// RefreshTokenRepository persists refresh tokens keyed by user email. The
// primary key on user_email makes replace-on-issue a single upsert, and
// TakeByHash uses DELETE ... RETURNING so that concurrent rotations of the
// same token resolve to exactly one winner inside the database.
type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) ports.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Upsert(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_email, token_hash, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_email) DO UPDATE
		SET token_hash = EXCLUDED.token_hash,
		    expires_at = EXCLUDED.expires_at,
		    created_at = now()
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		token.UserEmail, token.TokenHash, token.ExpiresAt,
	).Scan(&token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) TakeByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE token_hash = $1
		RETURNING user_email, token_hash, expires_at, created_at
	`
	token := &domain.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.UserEmail,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to take refresh token: %w", err)
	}
	return token, nil
}
