package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub/api/internal/core/domain"
	"github.com/moviehub/api/internal/core/ports"
)

type fakeMovieRepo struct {
	mu     sync.Mutex
	movies map[uuid.UUID]*domain.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: map[uuid.UUID]*domain.Movie{}}
}

func (r *fakeMovieRepo) Save(_ context.Context, movie *domain.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.movies {
		if existing.Title == movie.Title {
			return domain.ErrDuplicateTitle
		}
	}
	copied := *movie
	r.movies[movie.ID] = &copied
	return nil
}

func (r *fakeMovieRepo) GetByTitle(_ context.Context, title string) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, movie := range r.movies {
		if movie.Title == title {
			copied := *movie
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMovieRepo) GetAll(_ context.Context) ([]*domain.Movie, error) {
	return r.sorted(), nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *domain.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[movie.ID]; !ok {
		return domain.ErrMovieNotFound
	}
	copied := *movie
	r.movies[movie.ID] = &copied
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.movies, id)
	return nil
}

func (r *fakeMovieRepo) List(_ context.Context, limit, offset int, _, _ string) ([]*domain.Movie, error) {
	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeMovieRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.movies)), nil
}

func (r *fakeMovieRepo) sorted() []*domain.Movie {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Movie, 0, len(r.movies))
	for _, movie := range r.movies {
		copied := *movie
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all
}

type fakeStorage struct {
	mu    sync.Mutex
	files map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string]string{}}
}

func (s *fakeStorage) Save(filename string, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.files[filename] = string(data)
	return filename, nil
}

func (s *fakeStorage) Exists(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[filename]
	return ok
}

func (s *fakeStorage) Delete(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, filename)
	return nil
}

func (s *fakeStorage) Path(filename string) (string, error) {
	if !s.Exists(filename) {
		return "", domain.ErrMovieNotFound
	}
	return filename, nil
}

func testPoster(name string) ports.PosterUpload {
	content := "poster-bytes"
	return ports.PosterUpload{
		Filename: name,
		Content:  strings.NewReader(content),
		Size:     int64(len(content)),
	}
}

func testMovieInput(title string) ports.CreateMovieInput {
	return ports.CreateMovieInput{
		Title:       title,
		Director:    "Denis Villeneuve",
		Studio:      "Legendary",
		Cast:        []string{"Timothée Chalamet", "Zendaya"},
		ReleaseYear: 2021,
	}
}

func newTestMovieService() (*MovieService, *fakeMovieRepo, *fakeStorage) {
	repo := newFakeMovieRepo()
	storage := newFakeStorage()
	return NewMovieService(repo, storage, "http://localhost:8080/"), repo, storage
}

func TestMovieAddStoresPosterAndDerivesURL(t *testing.T) {
	svc, _, storage := newTestMovieService()

	movie, err := svc.Add(context.Background(), testMovieInput("Dune"), testPoster("dune.png"))
	require.NoError(t, err)
	assert.Equal(t, "dune.png", movie.Poster)
	assert.Equal(t, "http://localhost:8080/file/dune.png", movie.PosterURL)
	assert.True(t, storage.Exists("dune.png"))
}

func TestMovieAddRequiresPoster(t *testing.T) {
	svc, _, _ := newTestMovieService()

	_, err := svc.Add(context.Background(), testMovieInput("Dune"), ports.PosterUpload{})
	assert.ErrorIs(t, err, domain.ErrEmptyPoster)
}

func TestMovieAddRejectsExistingPosterName(t *testing.T) {
	svc, _, _ := newTestMovieService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testMovieInput("Dune"), testPoster("dune.png"))
	require.NoError(t, err)

	_, err = svc.Add(ctx, testMovieInput("Dune Two"), testPoster("dune.png"))
	assert.ErrorIs(t, err, domain.ErrPosterExists)
}

func TestMovieAddCleansUpPosterOnDuplicateTitle(t *testing.T) {
	svc, _, storage := newTestMovieService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testMovieInput("Dune"), testPoster("dune.png"))
	require.NoError(t, err)

	_, err = svc.Add(ctx, testMovieInput("Dune"), testPoster("dune-2.png"))
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)
	assert.False(t, storage.Exists("dune-2.png"))
}

func TestMovieGetByTitleNotFound(t *testing.T) {
	svc, _, _ := newTestMovieService()

	_, err := svc.GetByTitle(context.Background(), "Missing")
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestMovieUpdateKeepsPosterWhenNoneUploaded(t *testing.T) {
	svc, _, _ := newTestMovieService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testMovieInput("Dune"), testPoster("dune.png"))
	require.NoError(t, err)

	input := testMovieInput("Dune")
	input.Studio = "Warner Bros"
	updated, err := svc.Update(ctx, "Dune", input, ports.PosterUpload{})
	require.NoError(t, err)
	assert.Equal(t, "dune.png", updated.Poster)
	assert.Equal(t, "Warner Bros", updated.Studio)
}

func TestMovieUpdateReplacesPoster(t *testing.T) {
	svc, _, storage := newTestMovieService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testMovieInput("Dune"), testPoster("dune.png"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "Dune", testMovieInput("Dune"), testPoster("dune-v2.png"))
	require.NoError(t, err)
	assert.Equal(t, "dune-v2.png", updated.Poster)
	assert.False(t, storage.Exists("dune.png"))
	assert.True(t, storage.Exists("dune-v2.png"))
}

func TestMovieDeleteRemovesPoster(t *testing.T) {
	svc, _, storage := newTestMovieService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testMovieInput("Dune"), testPoster("dune.png"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "Dune"))
	assert.False(t, storage.Exists("dune.png"))

	_, err = svc.GetByTitle(ctx, "Dune")
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestMoviePagination(t *testing.T) {
	svc, _, _ := newTestMovieService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		title := fmt.Sprintf("Movie %d", i)
		_, err := svc.Add(ctx, testMovieInput(title), testPoster(fmt.Sprintf("poster-%d.png", i)))
		require.NoError(t, err)
	}

	first, err := svc.Page(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, first.Movies, 2)
	assert.Equal(t, int64(5), first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.False(t, first.IsLast)

	last, err := svc.Page(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Movies, 1)
	assert.True(t, last.IsLast)

	empty, err := svc.Page(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Movies)
	assert.True(t, empty.IsLast)
}
