// file: internal/router/router.go
package router

import (
	"context"
	"net/http"

	"prophezeiung/internal/database"
	"prophezeiung/internal/handlers/api/v1/badges"
	"prophezeiung/internal/handlers/api/v1/notifications"
	"prophezeiung/internal/handlers/api/v1/prophecies"
	"prophezeiung/internal/handlers/api/v1/rounds"
	"prophezeiung/internal/handlers/api/v1/users"
	"prophezeiung/internal/middleware"
	"prophezeiung/internal/response"
	"prophezeiung/internal/services"

	_ "prophezeiung/docs" // generated swagger docs

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// New configures all HTTP routes and returns the main handler
func New(
	serviceCollection *services.ServiceCollection,
	authenticator *middleware.Authenticator,
	responseBuilder *response.Builder,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logger))
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recovery(logger))

	userController := users.NewUserController(serviceCollection, logger, responseBuilder)
	roundController := rounds.NewRoundController(serviceCollection, logger, responseBuilder)
	prophecyController := prophecies.NewProphecyController(serviceCollection, logger, responseBuilder)
	badgeController := badges.NewBadgeController(serviceCollection, logger, responseBuilder)
	notificationController := notifications.NewNotificationController(serviceCollection, logger, responseBuilder)

	r.Get("/health", healthHandler(serviceCollection, responseBuilder))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// ===============================
		// PUBLIC ENDPOINTS
		// ===============================
		r.Group(func(r chi.Router) {
			r.Use(authenticator.OptionalAuth)

			r.Post("/users", userController.CreateUser)
			r.Get("/users", userController.ListUsers)
			r.Get("/users/{userID}", userController.GetUser)
			r.Get("/users/{userID}/prophecies", userController.ListUserProphecies)
			r.Get("/users/{userID}/badges", badgeController.ListUserBadges)
			r.Get("/users/{userID}/badges/progress", badgeController.GetProgress)
			r.Get("/leaderboard", userController.GetLeaderboard)

			r.Get("/rounds", roundController.ListRounds)
			r.Get("/rounds/{roundID}", roundController.GetRound)
			r.Get("/rounds/{roundID}/prophecies", roundController.ListProphecies)

			r.Get("/prophecies/{prophecyID}", prophecyController.GetProphecy)
			r.Get("/prophecies/{prophecyID}/ratings", prophecyController.ListRatings)

			r.Get("/badges", badgeController.ListCatalog)
			r.Get("/badges/stats", badgeController.GetStats)
		})

		// ===============================
		// AUTHENTICATED ENDPOINTS
		// ===============================
		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAuth)

			r.Post("/rounds", roundController.CreateRound)
			r.Post("/rounds/{roundID}/rating", roundController.OpenRating)
			r.Post("/rounds/{roundID}/resolve", roundController.ResolveRound)

			r.Post("/prophecies", prophecyController.CreateProphecy)
			r.Post("/prophecies/{prophecyID}/ratings", prophecyController.RateProphecy)

			r.Get("/notifications", notificationController.ListNotifications)
			r.Post("/notifications/{notificationID}/read", notificationController.MarkRead)
		})
	})

	logger.Info("Router setup completed",
		zap.String("base_path", "/api/v1"),
		zap.String("swagger_ui", "/swagger/"),
	)

	return r
}

// healthChecker is the slice of ServiceCollection the health endpoint needs
type healthChecker interface {
	HealthCheck(ctx context.Context) map[string]interface{}
}

func healthHandler(checker healthChecker, responseBuilder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := checker.HealthCheck(r.Context())

		status := http.StatusOK
		if health["status"] != database.StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		responseBuilder.WriteJSON(w, r, responseBuilder.Success(r.Context(), health), status)
	}
}
