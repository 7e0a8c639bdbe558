package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewHandler(
	log zerolog.Logger,
	auth *AuthMiddleware,
	authHandler *AuthHandler,
	movieHandler *MovieHandler,
	fileHandler *FileHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(auth.Handler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Route("/movie", func(r chi.Router) {
			r.Get("/all", movieHandler.GetAll)
			r.Get("/allMoviesPage", movieHandler.GetPage)
			r.Get("/allMoviesPageSort", movieHandler.GetPageSorted)
			r.Get("/{title}", movieHandler.GetByTitle)

			r.With(RequireAdmin).Post("/add-movie", movieHandler.Add)
			r.With(RequireAdmin).Put("/update/{title}", movieHandler.Update)
			r.With(RequireAdmin).Delete("/delete/{title}", movieHandler.Delete)
		})
	})

	r.Get("/file/{filename}", fileHandler.Serve)

	return r
}
