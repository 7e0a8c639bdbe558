package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/moviehub/api/internal/core/domain"
	"github.com/moviehub/api/internal/core/ports"
)

type MovieService struct {
	repo    ports.MovieRepository
	files   ports.FileStorage
	baseURL string
}

func NewMovieService(repo ports.MovieRepository, files ports.FileStorage, baseURL string) *MovieService {
	return &MovieService{repo: repo, files: files, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *MovieService) Add(ctx context.Context, input ports.CreateMovieInput, poster ports.PosterUpload) (*ports.MovieDTO, error) {
	if poster.Filename == "" || poster.Size == 0 {
		return nil, domain.ErrEmptyPoster
	}
	if s.files.Exists(poster.Filename) {
		return nil, domain.ErrPosterExists
	}

	stored, err := s.files.Save(poster.Filename, poster.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store poster: %w", err)
	}

	movie := &domain.Movie{
		ID:          uuid.New(),
		Title:       input.Title,
		Director:    input.Director,
		Studio:      input.Studio,
		Cast:        input.Cast,
		ReleaseYear: input.ReleaseYear,
		Poster:      stored,
	}
	if err := s.repo.Save(ctx, movie); err != nil {
		_ = s.files.Delete(stored)
		return nil, err
	}

	return s.toDTO(movie), nil
}

func (s *MovieService) GetByTitle(ctx context.Context, title string) (*ports.MovieDTO, error) {
	movie, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	if movie == nil {
		return nil, domain.ErrMovieNotFound
	}
	return s.toDTO(movie), nil
}

func (s *MovieService) GetAll(ctx context.Context) ([]ports.MovieDTO, error) {
	movies, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return s.toDTOs(movies), nil
}

func (s *MovieService) Update(ctx context.Context, title string, input ports.CreateMovieInput, poster ports.PosterUpload) (*ports.MovieDTO, error) {
	existing, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrMovieNotFound
	}

	filename := existing.Poster
	if poster.Filename != "" && poster.Size > 0 {
		if err := s.files.Delete(existing.Poster); err != nil {
			return nil, fmt.Errorf("failed to replace poster: %w", err)
		}
		filename, err = s.files.Save(poster.Filename, poster.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store poster: %w", err)
		}
	}

	movie := &domain.Movie{
		ID:          existing.ID,
		Title:       input.Title,
		Director:    input.Director,
		Studio:      input.Studio,
		Cast:        input.Cast,
		ReleaseYear: input.ReleaseYear,
		Poster:      filename,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	return s.toDTO(movie), nil
}

func (s *MovieService) Delete(ctx context.Context, title string) error {
	movie, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to get movie: %w", err)
	}
	if movie == nil {
		return domain.ErrMovieNotFound
	}

	if err := s.repo.Delete(ctx, movie.ID); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	// The row is gone; a stale poster file is not worth failing the request.
	_ = s.files.Delete(movie.Poster)
	return nil
}

func (s *MovieService) Page(ctx context.Context, pageNumber, pageSize int) (*ports.MoviePage, error) {
	return s.PageSorted(ctx, pageNumber, pageSize, "title", "asc")
}

func (s *MovieService) PageSorted(ctx context.Context, pageNumber, pageSize int, sortBy, dir string) (*ports.MoviePage, error) {
	if pageNumber < 0 {
		pageNumber = 0
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	movies, err := s.repo.List(ctx, pageSize, pageNumber*pageSize, sortBy, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &ports.MoviePage{
		Movies:        s.toDTOs(movies),
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		IsLast:        int64(pageNumber+1)*int64(pageSize) >= total,
	}, nil
}

func (s *MovieService) toDTO(movie *domain.Movie) *ports.MovieDTO {
	return &ports.MovieDTO{
		Movie:     *movie,
		PosterURL: s.baseURL + "/file/" + movie.Poster,
	}
}

func (s *MovieService) toDTOs(movies []*domain.Movie) []ports.MovieDTO {
	dtos := make([]ports.MovieDTO, 0, len(movies))
	for _, movie := range movies {
		dtos = append(dtos, *s.toDTO(movie))
	}
	return dtos
}

var _ ports.MovieService = (*MovieService)(nil)
