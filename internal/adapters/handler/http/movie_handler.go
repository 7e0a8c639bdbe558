package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/moviehub/api/internal/core/ports"
)

const (
	defaultPageNumber = 0
	defaultPageSize   = 10
	defaultSortBy     = "title"
	defaultSortDir    = "asc"

	maxUploadSize = 32 << 20 // 32 MiB
)

type MovieHandler struct {
	service  ports.MovieService
	validate *validator.Validate
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{
		service:  service,
		validate: validator.New(),
	}
}

// Add godoc
// @Summary      Adds a movie (ADMIN)
// @Description  Multipart request: "file" poster part plus "movieDto" JSON part
// @Tags         movie
// @Accept       mpfd
// @Success      201
// @Failure      403
// @Router       /api/v1/movie/add-movie [post]
func (h *MovieHandler) Add(w http.ResponseWriter, r *http.Request) {
	input, poster, cleanup, err := h.parseMultipart(r, true)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	movie, err := h.service.Add(r.Context(), *input, poster)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, movie)
}

func (h *MovieHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	movie, err := h.service.GetByTitle(r.Context(), title)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetAll(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// Update godoc
// @Summary      Updates a movie (ADMIN)
// @Description  Multipart request; the poster part is optional
// @Tags         movie
// @Accept       mpfd
// @Success      200
// @Failure      404
// @Router       /api/v1/movie/update/{title} [put]
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	input, poster, cleanup, err := h.parseMultipart(r, false)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	movie, err := h.service.Update(r.Context(), title, *input, poster)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if err := h.service.Delete(r.Context(), title); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "movie deleted: " + title})
}

func (h *MovieHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	pageNumber := queryInt(r, "pageNumber", defaultPageNumber)
	pageSize := queryInt(r, "pageSize", defaultPageSize)

	page, err := h.service.Page(r.Context(), pageNumber, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *MovieHandler) GetPageSorted(w http.ResponseWriter, r *http.Request) {
	pageNumber := queryInt(r, "pageNumber", defaultPageNumber)
	pageSize := queryInt(r, "pageSize", defaultPageSize)
	sortBy := queryString(r, "sortBy", defaultSortBy)
	dir := queryString(r, "dir", defaultSortDir)

	page, err := h.service.PageSorted(r.Context(), pageNumber, pageSize, sortBy, dir)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// parseMultipart extracts the movieDto JSON part and, when present, the
// poster file part. The cleanup func closes the file and must always be
// deferred by the caller.
func (h *MovieHandler) parseMultipart(r *http.Request, fileRequired bool) (*ports.CreateMovieInput, ports.PosterUpload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, ports.PosterUpload{}, noop, errors.New("invalid multipart request")
	}

	dto := r.FormValue("movieDto")
	if dto == "" {
		return nil, ports.PosterUpload{}, noop, errors.New("missing movieDto part")
	}

	var input ports.CreateMovieInput
	if err := json.Unmarshal([]byte(dto), &input); err != nil {
		return nil, ports.PosterUpload{}, noop, errors.New("invalid movieDto payload")
	}
	if err := h.validate.Struct(input); err != nil {
		return nil, ports.PosterUpload{}, noop, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) && !fileRequired {
			return &input, ports.PosterUpload{}, noop, nil
		}
		return nil, ports.PosterUpload{}, noop, errors.New("missing poster file")
	}

	poster := ports.PosterUpload{
		Filename: header.Filename,
		Content:  file,
		Size:     header.Size,
	}
	return &input, poster, func() { file.Close() }, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryString(r *http.Request, name, fallback string) string {
	if value := r.URL.Query().Get(name); value != "" {
		return value
	}
	return fallback
}
