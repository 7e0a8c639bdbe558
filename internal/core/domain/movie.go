package domain

import (
	"time"

	"github.com/google/uuid"
)

// Movie is a catalog entry. Titles are unique and used as the lookup key on
// the HTTP surface. Poster holds the stored file name; the public URL is
// derived from it by the movie service.
type Movie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	Studio      string    `json:"studio"`
	Cast        []string  `json:"movieCast"`
	ReleaseYear int       `json:"releaseYear"`
	Poster      string    `json:"poster"`
	CreatedAt   time.Time `json:"created_at"`
}
