package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/minhng/typing-game-backend/internal/config"
	"github.com/minhng/typing-game-backend/internal/handlers"
	"github.com/minhng/typing-game-backend/internal/metrics"
	"github.com/minhng/typing-game-backend/internal/middleware"
	"github.com/minhng/typing-game-backend/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	textHandler *handlers.TextHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	gatherer prometheus.Gatherer,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)
	api.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(gatherer)))

	// Public auth endpoints
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/validate", authHandler.Validate)
	auth.Get("/login/:provider", authHandler.OAuthLogin)
	auth.Get("/callback/:provider", authHandler.OAuthCallback)

	// Protected auth endpoints
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Text sample reads are public, the game page fetches before login
	api.Get("/text-samples", textHandler.List)
	api.Get("/text-samples/:id", textHandler.Get)

	// Game sessions, user id comes from the token
	game := api.Group("/game-session", middleware.JWTProtected(cfg))
	game.Post("/start", gameHandler.Start)
	game.Put("/end/:id", gameHandler.End)
	game.Put("/abandon/:id", gameHandler.Abandon)
	game.Get("/active", gameHandler.Active)
	game.Get("/history", gameHandler.History)
	game.Get("/stats", gameHandler.Stats)

	// User profile
	api.Get("/users/me", middleware.JWTProtected(cfg), userHandler.Profile)
	api.Put("/users/me", middleware.JWTProtected(cfg), userHandler.Update)

	// Admin catalog management
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(users))
	admin.Post("/text-samples", textHandler.Create)
	admin.Delete("/text-samples/:id", textHandler.Deactivate)
}
