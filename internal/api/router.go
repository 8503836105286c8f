package api

import (
	"net/http"

	"github.com/dexkit/pokedex-server/internal/api/handlers"
	"github.com/dexkit/pokedex-server/internal/api/middleware"
	"github.com/dexkit/pokedex-server/internal/config"
	"github.com/dexkit/pokedex-server/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	pokemonHandler := handlers.NewPokemonHandler(services.Pokemon)
	teamHandler := handlers.NewTeamHandler(services.Team)
	collectionHandler := handlers.NewCollectionHandler(services.Collection)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Dex routes (public)
		r.Route("/pokemon", func(r chi.Router) {
			r.Get("/", pokemonHandler.GetAll)
			r.Post("/filter", pokemonHandler.Filter)
			r.Post("/filter/count", pokemonHandler.FilterCount)
			r.Get("/filter-options", pokemonHandler.FilterOptions)
			r.Post("/sync", pokemonHandler.Sync) // Should be admin-only in production
			r.Get("/{id}", pokemonHandler.Get)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Team routes
			r.Route("/teams", func(r chi.Router) {
				r.Post("/", teamHandler.Create)
				r.Get("/", teamHandler.List)
				r.Get("/{id}", teamHandler.Get)
				r.Put("/{id}", teamHandler.Rename)
				r.Delete("/{id}", teamHandler.Delete)
				r.Post("/{id}/members", teamHandler.AddMember)
				r.Delete("/{id}/members/{pokemonId}", teamHandler.RemoveMember)
				r.Get("/{id}/analysis", teamHandler.Analyze)
			})

			// Collection routes
			r.Route("/collection", func(r chi.Router) {
				r.Get("/", collectionHandler.List)
				r.Get("/stats", collectionHandler.Stats)
				r.Put("/{pokemonId}/caught", collectionHandler.SetCaught)
				r.Delete("/{pokemonId}/caught", collectionHandler.UnsetCaught)
				r.Put("/{pokemonId}/favorite", collectionHandler.SetFavorite)
				r.Delete("/{pokemonId}/favorite", collectionHandler.UnsetFavorite)
			})
		})
	})

	return r
}
