package domain

import "errors"

var (
	// Credential and session errors. Unknown email and wrong password both
	// surface as ErrInvalidCredentials so callers cannot enumerate accounts.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// Access token verification errors.
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrSubjectMismatch       = errors.New("token subject mismatch")

	ErrUserNotFound   = errors.New("user not found")
	ErrMovieNotFound  = errors.New("movie not found")
	ErrDuplicateTitle = errors.New("movie title already exists")
	ErrEmptyPoster    = errors.New("poster file is empty")
	ErrPosterExists   = errors.New("poster file already exists")
)
