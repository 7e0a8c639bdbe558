package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moviehub/api/internal/core/domain"
	"github.com/moviehub/api/internal/core/ports"
)

// AuthService orchestrates registration, login and refresh. It owns no
// state of its own; all invariants live in the codec and the token store.
type AuthService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	codec   ports.TokenCodec
	refresh ports.RefreshTokenStore
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, refresh ports.RefreshTokenStore) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec, refresh: refresh}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.AuthTokens, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthTokens, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Unknown email and wrong password take the same path out.
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	email, next, err := s.refresh.ValidateAndRotate(ctx, refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	access, err := s.codec.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &domain.AuthTokens{
		AccessToken:  access,
		RefreshToken: next,
		Name:         user.Name,
		Email:        user.Email,
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*domain.AuthTokens, error) {
	access, err := s.codec.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.refresh.Issue(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &domain.AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		Name:         user.Name,
		Email:        user.Email,
	}, nil
}

var _ ports.AuthService = (*AuthService)(nil)
