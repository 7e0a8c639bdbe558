package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moviehub/api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a storage or programming failure and surfaces as a
// generic 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrInvalidRefreshToken):
		respondError(w, http.StatusUnauthorized, "invalid refresh token")
	case errors.Is(err, domain.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, domain.ErrDuplicateEmail.Error())
	case errors.Is(err, domain.ErrDuplicateTitle):
		respondError(w, http.StatusConflict, domain.ErrDuplicateTitle.Error())
	case errors.Is(err, domain.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, domain.ErrMovieNotFound.Error())
	case errors.Is(err, domain.ErrEmptyPoster), errors.Is(err, domain.ErrPosterExists):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
