package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/moviehub/api/internal/core/domain"
)

type CreateMovieInput struct {
	Title       string   `json:"title" validate:"required"`
	Director    string   `json:"director" validate:"required"`
	Studio      string   `json:"studio" validate:"required"`
	Cast        []string `json:"movieCast"`
	ReleaseYear int      `json:"releaseYear" validate:"required"`
}

// PosterUpload carries an uploaded poster file into the movie service.
type PosterUpload struct {
	Filename string
	Content  io.Reader
	Size     int64
}

// MovieDTO is a movie enriched with the public poster URL.
type MovieDTO struct {
	domain.Movie
	PosterURL string `json:"posterUrl"`
}

// MoviePage is one page of movies plus pagination metadata.
type MoviePage struct {
	Movies        []MovieDTO `json:"movies"`
	PageNumber    int        `json:"pageNumber"`
	PageSize      int        `json:"pageSize"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
	IsLast        bool       `json:"isLast"`
}

type MovieService interface {
	Add(ctx context.Context, input CreateMovieInput, poster PosterUpload) (*MovieDTO, error)
	GetByTitle(ctx context.Context, title string) (*MovieDTO, error)
	GetAll(ctx context.Context) ([]MovieDTO, error)
	// Update replaces the movie stored under title. A zero-value poster
	// keeps the existing file.
	Update(ctx context.Context, title string, input CreateMovieInput, poster PosterUpload) (*MovieDTO, error)
	Delete(ctx context.Context, title string) error
	Page(ctx context.Context, pageNumber, pageSize int) (*MoviePage, error)
	PageSorted(ctx context.Context, pageNumber, pageSize int, sortBy, dir string) (*MoviePage, error)
}

type MovieRepository interface {
	Save(ctx context.Context, movie *domain.Movie) error
	// GetByTitle returns (nil, nil) when no movie exists with that title.
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)
	GetAll(ctx context.Context) ([]*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns one page ordered by sortBy/dir. Unknown sort columns fall
	// back to title ascending.
	List(ctx context.Context, limit, offset int, sortBy, dir string) ([]*domain.Movie, error)
	Count(ctx context.Context) (int64, error)
}

// FileStorage stores poster files under their original name.
type FileStorage interface {
	Save(filename string, content io.Reader) (string, error)
	Exists(filename string) bool
	Delete(filename string) error
	// Path returns the on-disk location for serving.
	Path(filename string) (string, error)
}
