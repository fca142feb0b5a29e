package handlers

import (
	"net/http"

	"folio/internal/models"
)

// validateProjectInput checks a project payload and returns the first error
// message found, or "".
func validateProjectInput(in *models.ProjectInput) string {
	if msg := validateTitle(in.Title); msg != "" {
		return msg
	}
	if !validSlug(in.Slug) {
		return "Slug must contain only lowercase letters, digits and hyphens."
	}
	switch in.Status {
	case "":
		in.Status = models.ProjectDraft
	case models.ProjectDraft, models.ProjectPublished, models.ProjectArchived:
	default:
		return "Status must be draft, published or archived."
	}
	return ""
}

// validateContentInput checks a project content payload.
func validateContentInput(in *models.ProjectContentInput) string {
	switch in.DetailLevel {
	case models.DetailBrief, models.DetailStandard, models.DetailDeep:
	default:
		return "Detail level must be brief, standard or deep."
	}
	return ""
}

// ListProjects returns all projects, drafts included, for the dashboard.
func (h *Admin) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(false)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, projects)
}

// GetProject returns one project with its content rows.
func (h *Admin) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projects.FindByID(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Project not found")
		return
	}
	respond(w, http.StatusOK, project)
}

// CreateProject adds a new project. A duplicate slug yields 409 CONFLICT.
func (h *Admin) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateProjectInput(&in); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	project, err := h.projects.Create(in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	respond(w, http.StatusCreated, project)
}

// UpdateProject replaces a project's fields.
func (h *Admin) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var in models.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateProjectInput(&in); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	project, err := h.projects.Update(id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	respond(w, http.StatusOK, project)
}

// DeleteProject removes a project and its content.
func (h *Admin) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	respond(w, http.StatusOK, map[string]any{"message": "Project deleted"})
}

// CreateProjectContent adds a write-up at one detail level. A second row at
// the same level yields 409 CONFLICT.
func (h *Admin) CreateProjectContent(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var in models.ProjectContentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateContentInput(&in); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	content, err := h.projects.CreateContent(projectID, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	respond(w, http.StatusCreated, content)
}

// UpdateProjectContent replaces one content row of a project.
func (h *Admin) UpdateProjectContent(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	contentID, ok := parseUUIDParam(w, r, "contentId")
	if !ok {
		return
	}

	var in models.ProjectContentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateContentInput(&in); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	content, err := h.projects.UpdateContent(projectID, contentID, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	respond(w, http.StatusOK, content)
}

// DeleteProjectContent removes one content row of a project.
func (h *Admin) DeleteProjectContent(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}
	contentID, ok := parseUUIDParam(w, r, "contentId")
	if !ok {
		return
	}

	if err := h.projects.DeleteContent(projectID, contentID); err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	respond(w, http.StatusOK, map[string]any{"message": "Content deleted"})
}
