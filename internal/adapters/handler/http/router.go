package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewAuthRouter(authHandler *AuthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/validate", authHandler.Validate)
	})

	return r
}

func NewUserRouter(profileHandler *ProfileHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", profileHandler.GetAll)
		r.Get("/{id}", profileHandler.GetByID)
		r.Patch("/{id}", profileHandler.Update)
	})

	return r
}

func NewHistoryRouter(activityHandler *ActivityHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/history", func(r chi.Router) {
		r.Post("/", activityHandler.RecordActivity)
		r.Get("/{userId}", activityHandler.GetHistory)
	})

	r.Route("/watchlist", func(r chi.Router) {
		r.Post("/", activityHandler.AddToWatchlist)
		r.Get("/{userId}", activityHandler.GetWatchlist)
		r.Delete("/{userId}/{contentId}", activityHandler.RemoveFromWatchlist)
	})

	return r
}
