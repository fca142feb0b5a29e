package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/storage"
	"folio/internal/store"
)

// Admin groups the authenticated dashboard handlers: site settings, home
// layout, projects, writing, analytics and media uploads. Every route is
// behind RequireAuth and VerifyCSRF in the router.
type Admin struct {
	settings  *store.SettingsStore
	projects  *store.ProjectStore
	writing   *store.WritingStore
	analytics *store.AnalyticsStore
	storage   *storage.Client
	cache     *cache.ResponseCache
}

// NewAdmin creates a new Admin handler group. storage and cache may be nil
// when S3 or Valkey are not configured.
func NewAdmin(settings *store.SettingsStore, projects *store.ProjectStore, writing *store.WritingStore, analytics *store.AnalyticsStore, storageClient *storage.Client, respCache *cache.ResponseCache) *Admin {
	return &Admin{
		settings:  settings,
		projects:  projects,
		writing:   writing,
		analytics: analytics,
		storage:   storageClient,
		cache:     respCache,
	}
}

// parseUUIDParam reads a chi URL parameter as a UUID, writing a 400 when it
// does not parse.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// GetSettings returns the site settings row for the dashboard.
func (h *Admin) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetSettings()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if settings == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Settings have not been initialized")
		return
	}
	respond(w, http.StatusOK, settings)
}

// UpdateSettings replaces the site settings and invalidates the cached
// public copy.
func (h *Admin) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in models.SiteSettingsInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.SiteName == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Site name is required")
		return
	}
	if in.OwnerEmail != "" && !validEmail(in.OwnerEmail) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Owner email is not a valid address")
		return
	}

	settings, err := h.settings.UpdateSettings(in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeySettings)
	respond(w, http.StatusOK, settings)
}

// GetHomeLayout returns the homepage section list.
func (h *Admin) GetHomeLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.settings.GetHomeLayout()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if layout == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Home layout has not been initialized")
		return
	}
	respond(w, http.StatusOK, layout)
}

type homeLayoutRequest struct {
	Sections json.RawMessage `json:"sections"`
}

// UpdateHomeLayout replaces the homepage section list.
func (h *Admin) UpdateHomeLayout(w http.ResponseWriter, r *http.Request) {
	var req homeLayoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	layout, err := h.settings.UpdateHomeLayout(req.Sections)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyHomeLayout)
	respond(w, http.StatusOK, layout)
}

// AnalyticsSummary returns totals, the daily pageview series and the top
// paths over the requested window (?days=N, default 30, capped at 365).
func (h *Admin) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "days must be a positive integer")
			return
		}
		days = n
	}
	if days > 365 {
		days = 365
	}

	summary, err := h.analytics.Summary(days)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, summary)
}
