package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/store"
)

// allowedEventTypes are the analytics events the ingestion endpoint accepts.
var allowedEventTypes = map[string]bool{
	"pageview": true,
	"click":    true,
	"download": true,
}

// Public groups the unauthenticated site handlers. GET responses are cached
// whole in Valkey; admin mutations invalidate the affected keys.
type Public struct {
	settings  *store.SettingsStore
	projects  *store.ProjectStore
	writing   *store.WritingStore
	analytics *store.AnalyticsStore
	cache     *cache.ResponseCache
}

// NewPublic creates a new Public handler group. respCache may be nil when
// Valkey is not configured.
func NewPublic(settings *store.SettingsStore, projects *store.ProjectStore, writing *store.WritingStore, analytics *store.AnalyticsStore, respCache *cache.ResponseCache) *Public {
	return &Public{
		settings:  settings,
		projects:  projects,
		writing:   writing,
		analytics: analytics,
		cache:     respCache,
	}
}

// serveCached writes the cached envelope for key if present; otherwise it
// runs fetch, responds with the result and stores the encoded envelope.
// fetch returning (nil, nil) means the resource does not exist.
func (h *Public) serveCached(w http.ResponseWriter, r *http.Request, key string, fetch func() (any, error)) {
	if payload, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	data, err := fetch()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if data == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	payload, err := json.Marshal(successBody{Success: true, Data: data})
	if err != nil {
		slog.Error("response encode failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}

	h.cache.Set(r.Context(), key, payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// GetSettings returns the site settings for the public site shell.
func (h *Public) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeySettings, func() (any, error) {
		settings, err := h.settings.GetSettings()
		if err != nil || settings == nil {
			return nil, err
		}
		return settings, nil
	})
}

// GetHomeLayout returns the homepage section list.
func (h *Public) GetHomeLayout(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyHomeLayout, func() (any, error) {
		layout, err := h.settings.GetHomeLayout()
		if err != nil || layout == nil {
			return nil, err
		}
		return layout, nil
	})
}

// ListProjects returns published projects only.
func (h *Public) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyProjects, func() (any, error) {
		projects, err := h.projects.List(true)
		if err != nil {
			return nil, err
		}
		if projects == nil {
			projects = []models.Project{}
		}
		return projects, nil
	})
}

// GetProject returns one published project by slug. Drafts and archived
// projects are invisible here, indistinguishable from absent ones.
func (h *Public) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !validSlug(slug) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	h.serveCached(w, r, cache.ProjectKey(slug), func() (any, error) {
		project, err := h.projects.FindBySlug(slug)
		if err != nil || project == nil {
			return nil, err
		}
		if project.Status != models.ProjectPublished {
			return nil, nil
		}
		return project, nil
	})
}

// writingPage is the public writing endpoint payload: the page header plus
// the category list.
type writingPage struct {
	Settings   writingPageSettings      `json:"settings"`
	Categories []models.WritingCategory `json:"categories"`
}

type writingPageSettings struct {
	PageTitle string `json:"pageTitle"`
	PageIntro string `json:"pageIntro"`
}

// ListWriting returns the writing page: header settings and the categories
// with visible items only. A missing header row falls back to a default
// title so the page renders before any seed has run.
func (h *Public) ListWriting(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyWriting, func() (any, error) {
		header, err := h.writing.GetPageSettings()
		if err != nil {
			return nil, err
		}
		categories, err := h.writing.ListCategories(true)
		if err != nil {
			return nil, err
		}
		if categories == nil {
			categories = []models.WritingCategory{}
		}

		page := writingPage{
			Settings:   writingPageSettings{PageTitle: "Selected Writing"},
			Categories: categories,
		}
		if header != nil {
			page.Settings = writingPageSettings{PageTitle: header.PageTitle, PageIntro: header.PageIntro}
		}
		return page, nil
	})
}

type eventRequest struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

// RecordEvent ingests one analytics event. The endpoint is fire and forget:
// a storage failure is logged and still acknowledged so client beacons never
// retry or surface errors to visitors.
func (h *Public) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !allowedEventTypes[req.Type] || req.Path == "" || len(req.Path) > maxURLLen {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event")
		return
	}
	if len(req.Referrer) > maxURLLen {
		req.Referrer = req.Referrer[:maxURLLen]
	}

	if err := h.analytics.Record(req.Type, req.Path, req.Referrer); err != nil {
		slog.Error("analytics record failed", "error", err)
	}
	respond(w, http.StatusAccepted, map[string]any{"message": "Recorded"})
}
