package handlers

import (
	"net/http"

	"folio/internal/cache"
	"folio/internal/models"
)

// validateItemInput checks a writing item payload.
func validateItemInput(in *models.WritingItemInput) string {
	if msg := validateTitle(in.Title); msg != "" {
		return msg
	}
	if in.URL == "" {
		return "URL is required."
	}
	if msg := validateURL(in.URL); msg != "" {
		return msg
	}
	if len(in.Platform) > maxTitleLen {
		return "Platform is too long (max 300 characters)."
	}
	return ""
}

// GetWritingSettings returns the writing page header for the dashboard.
func (h *Admin) GetWritingSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.writing.GetPageSettings()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if settings == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Writing settings have not been initialized")
		return
	}
	respond(w, http.StatusOK, settings)
}

// UpdateWritingSettings replaces the writing page header.
func (h *Admin) UpdateWritingSettings(w http.ResponseWriter, r *http.Request) {
	var in models.WritingSettingsInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateTitle(in.PageTitle); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}
	if len(in.PageIntro) > maxDescLen {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Intro is too long (max 2,000 characters).")
		return
	}

	settings, err := h.writing.UpdatePageSettings(in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyWriting)
	respond(w, http.StatusOK, settings)
}

// ListWriting returns all categories with their items, hidden included.
func (h *Admin) ListWriting(w http.ResponseWriter, r *http.Request) {
	categories, err := h.writing.ListCategories(false)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, categories)
}

// CreateWritingCategory adds a category.
func (h *Admin) CreateWritingCategory(w http.ResponseWriter, r *http.Request) {
	var in models.WritingCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	category, err := h.writing.CreateCategory(in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyWriting)
	respond(w, http.StatusCreated, category)
}

// UpdateWritingCategory replaces a category's fields.
func (h *Admin) UpdateWritingCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var in models.WritingCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	category, err := h.writing.UpdateCategory(id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyWriting)
	respond(w, http.StatusOK, category)
}

// DeleteWritingCategory removes a category and its items.
func (h *Admin) DeleteWritingCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.writing.DeleteCategory(id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyWriting)
	respond(w, http.StatusOK, map[string]any{"message": "Category deleted"})
}

// CreateWritingItem adds an item to a category.
func (h *Admin) CreateWritingItem(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var in models.WritingItemInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateItemInput(&in); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	item, err := h.writing.CreateItem(categoryID, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyWriting)
	respond(w, http.StatusCreated, item)
}

// UpdateWritingItem replaces an item's fields.
func (h *Admin) UpdateWritingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "itemId")
	if !ok {
		return
	}

	var in models.WritingItemInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateItemInput(&in); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	item, err := h.writing.UpdateItem(id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyWriting)
	respond(w, http.StatusOK, item)
}

// DeleteWritingItem removes a single item.
func (h *Admin) DeleteWritingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.writing.DeleteItem(id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), cache.KeyWriting)
	respond(w, http.StatusOK, map[string]any{"message": "Item deleted"})
}
