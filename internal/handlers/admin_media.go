package handlers

import (
	"log/slog"
	"net/http"
)

// maxUploadSize is the maximum allowed media upload size (20 MB).
const maxUploadSize = 20 << 20

// allowedMediaTypes defines MIME types accepted for upload: images for
// thumbnails and icons, PDF for the resume.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"image/x-icon":    true,
	"application/pdf": true,
}

// UploadMedia accepts a multipart file upload, stores it in object storage
// and returns the public URL. Returns 503 when storage is not configured.
func (h *Admin) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Available() {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Media storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "A file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMediaTypes[contentType] {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unsupported file type")
		return
	}

	url, err := h.storage.Upload(r.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		slog.Error("media upload failed", "filename", header.Filename, "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		return
	}

	slog.Info("media uploaded", "filename", header.Filename, "url", url)
	respond(w, http.StatusCreated, map[string]any{"url": url})
}
