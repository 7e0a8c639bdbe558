package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moviehub/api/internal/core/ports"
)

// FileHandler serves stored poster files. The route is public; posters are
// referenced by URL from movie responses.
type FileHandler struct {
	storage ports.FileStorage
}

func NewFileHandler(storage ports.FileStorage) *FileHandler {
	return &FileHandler{storage: storage}
}

func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	path, err := h.storage.Path(filename)
	if err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, path)
}
