// Package router sets up all HTTP routes and middleware chains for the
// portfolio API. Routes are organized into auth, admin and public groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/auth"
	"folio/internal/handlers"
	"folio/internal/middleware"
)

// Login attempts per client IP within the rate-limit window.
const (
	loginRateLimit  = 10
	loginRateWindow = 15 * time.Minute

	globalRateLimit  = 300
	globalRateWindow = time.Minute
)

// New creates and returns the configured chi router with all middleware and
// route groups wired up.
func New(signer *auth.Signer, authHandlers *handlers.Auth, admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	globalLimiter := middleware.NewRateLimiter(globalRateLimit, globalRateWindow)
	r.Use(globalLimiter.Middleware)

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	// Auth routes. Login gets its own tight rate limit; everything after
	// login is CSRF-protected and most of it requires the identity cookie.
	r.Route("/api/auth", func(r chi.Router) {
		loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/login", authHandlers.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.VerifyCSRF)
			r.Post("/logout", authHandlers.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(signer))
				r.Get("/me", authHandlers.Me)
				r.Post("/change-password", authHandlers.ChangePassword)
				r.Post("/2fa/setup", authHandlers.TOTPSetup)
				r.Post("/2fa/verify", authHandlers.TOTPVerify)
				r.Post("/2fa/disable", authHandlers.TOTPDisable)
			})
		})
	})

	// Admin dashboard API. Authenticated and CSRF-protected.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth(signer))
		r.Use(middleware.VerifyCSRF)

		r.Get("/settings", admin.GetSettings)
		r.Put("/settings", admin.UpdateSettings)
		r.Get("/home-layout", admin.GetHomeLayout)
		r.Put("/home-layout", admin.UpdateHomeLayout)
		r.Get("/analytics", admin.AnalyticsSummary)
		r.Post("/media", admin.UploadMedia)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", admin.ListProjects)
			r.Post("/", admin.CreateProject)
			r.Get("/{id}", admin.GetProject)
			r.Put("/{id}", admin.UpdateProject)
			r.Delete("/{id}", admin.DeleteProject)
			r.Post("/{id}/content", admin.CreateProjectContent)
			r.Put("/{id}/content/{contentId}", admin.UpdateProjectContent)
			r.Delete("/{id}/content/{contentId}", admin.DeleteProjectContent)
		})

		r.Route("/writing", func(r chi.Router) {
			r.Get("/", admin.ListWriting)
			r.Get("/settings", admin.GetWritingSettings)
			r.Put("/settings", admin.UpdateWritingSettings)
			r.Post("/categories", admin.CreateWritingCategory)
			r.Put("/categories/{id}", admin.UpdateWritingCategory)
			r.Delete("/categories/{id}", admin.DeleteWritingCategory)
			r.Post("/categories/{id}/items", admin.CreateWritingItem)
			r.Put("/items/{itemId}", admin.UpdateWritingItem)
			r.Delete("/items/{itemId}", admin.DeleteWritingItem)
		})
	})

	// Public site API. Read-only except for the analytics beacon, which is
	// deliberately outside the CSRF fence: it is unauthenticated, carries no
	// cookies worth forging and must work from plain sendBeacon calls.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/settings", public.GetSettings)
		r.Get("/home-layout", public.GetHomeLayout)
		r.Get("/projects", public.ListProjects)
		r.Get("/projects/{slug}", public.GetProject)
		r.Get("/writing", public.ListWriting)
	})
	r.Post("/api/events", public.RecordEvent)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
