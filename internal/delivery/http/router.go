package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusparties/internal/delivery/http/controllers"
	"campusparties/internal/delivery/http/helpers"
	"campusparties/internal/delivery/http/middleware"
	"campusparties/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes. Auth and
// rate-limit middleware are applied per route: reads get the loosest quota,
// the anonymous going bump the tightest.
func NewRouter(
	logger *slog.Logger,
	verifier domain.IdentityVerifier,
	profiles domain.ProfileService,
	rl *middleware.RateLimiter,
	authController *controllers.AuthController,
	partyController *controllers.PartyController,
	adminController *controllers.AdminController,
) *http.ServeMux {
	mux := http.NewServeMux()

	optionalAuth := middleware.OptionalAuth(verifier)
	requireAuth := middleware.RequireAuth(verifier)
	requireAdmin := middleware.RequireAdmin(verifier, profiles, logger)

	// Service info
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{
			"message": "Campus Parties API",
			"version": "1.0.0",
		})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Auth
	mux.HandleFunc("POST /auth/signup", rl.Mutate(authController.Signup))
	mux.HandleFunc("POST /auth/set-username", rl.Mutate(requireAuth(authController.SetUsername)))
	mux.HandleFunc("GET /auth/me", rl.Read(requireAuth(authController.Me)))

	// Parties
	mux.HandleFunc("GET /parties", rl.Read(optionalAuth(partyController.List)))
	mux.HandleFunc("GET /parties/user/going", rl.Read(requireAuth(partyController.ListMyGoing)))
	mux.HandleFunc("GET /parties/{partyID}", rl.Read(partyController.Get))
	mux.HandleFunc("POST /parties", rl.Mutate(requireAuth(partyController.Create)))
	mux.HandleFunc("DELETE /parties/{partyID}", rl.Mutate(requireAuth(partyController.Delete)))
	mux.HandleFunc("POST /parties/{partyID}/going", rl.Mutate(requireAuth(partyController.ToggleGoing)))
	mux.HandleFunc("POST /parties/{partyID}/going/anonymous", rl.Anonymous(partyController.AnonymousGoing))

	// Admin
	mux.HandleFunc("GET /admin/parties/pending", rl.Read(requireAdmin(adminController.ListPending)))
	mux.HandleFunc("POST /admin/parties/{partyID}/approve", rl.Mutate(requireAdmin(adminController.Approve)))
	mux.HandleFunc("POST /admin/parties/{partyID}/reject", rl.Mutate(requireAdmin(adminController.Reject)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
