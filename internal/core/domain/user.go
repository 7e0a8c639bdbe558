package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the flat authorization level attached to a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the authenticated principal. The email is unique and acts as the
// username for login and as the access token subject.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken is the server-side record of an issued refresh token.
// Only the sha256 hash of the raw value is stored; the row is keyed by user
// email so that issuing a new token replaces the previous one.
type RefreshToken struct {
	UserEmail string    `json:"user_email"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AccessClaims is the decoded, verified content of an access token.
type AccessClaims struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthTokens is the credential pair returned by register, login and refresh.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}
