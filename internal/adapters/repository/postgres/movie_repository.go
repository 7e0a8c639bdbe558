package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/moviehub/api/internal/core/domain"
	"github.com/moviehub/api/internal/core/ports"
)

// sortColumns whitelists sortable columns; anything else falls back to title.
var sortColumns = map[string]string{
	"title":       "title",
	"director":    "director",
	"studio":      "studio",
	"releaseYear": "release_year",
}

type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) ports.MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Save(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (id, title, director, studio, movie_cast, release_year, poster)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		movie.ID, movie.Title, movie.Director, movie.Studio,
		pq.Array(movie.Cast), movie.ReleaseYear, movie.Poster,
	).Scan(&movie.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	query := `
		SELECT id, title, director, studio, movie_cast, release_year, poster, created_at
		FROM movies
		WHERE title = $1
	`
	movie := &domain.Movie{}
	err := r.db.QueryRowContext(ctx, query, title).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Director,
		&movie.Studio,
		pq.Array(&movie.Cast),
		&movie.ReleaseYear,
		&movie.Poster,
		&movie.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

func (r *MovieRepository) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	query := `
		SELECT id, title, director, studio, movie_cast, release_year, poster, created_at
		FROM movies
		ORDER BY title ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all movies: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

func (r *MovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, director = $3, studio = $4, movie_cast = $5,
		    release_year = $6, poster = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		movie.ID, movie.Title, movie.Director, movie.Studio,
		pq.Array(movie.Cast), movie.ReleaseYear, movie.Poster,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to update movie: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	if affected == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) List(ctx context.Context, limit, offset int, sortBy, dir string) ([]*domain.Movie, error) {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "title"
	}
	direction := "ASC"
	if dir == "desc" || dir == "DESC" {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, title, director, studio, movie_cast, release_year, poster, created_at
		FROM movies
		ORDER BY %s %s
		LIMIT $1 OFFSET $2
	`, column, direction)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

func scanMovies(rows *sql.Rows) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	for rows.Next() {
		movie := &domain.Movie{}
		if err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Director,
			&movie.Studio,
			pq.Array(&movie.Cast),
			&movie.ReleaseYear,
			&movie.Poster,
			&movie.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}
	return movies, nil
}
