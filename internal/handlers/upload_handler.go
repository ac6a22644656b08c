package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/metrics"
	"botpanel-backend/internal/storage"

	"github.com/google/uuid"
)

const (
	defaultMaxImageMB = 5
	defaultMaxVideoMB = 50
)

var allowedExtensions = map[string]string{
	".jpg":  "imagen",
	".jpeg": "imagen",
	".png":  "imagen",
	".gif":  "imagen",
	".webp": "imagen",
	".mp4":  "video",
	".webm": "video",
	".mov":  "video",
}

// UploadHandler receives media files and stores them under a generated
// name. The original filename only contributes its extension.
type UploadHandler struct {
	Store         storage.MediaStore
	BaseURL       string
	maxImageBytes int64
	maxVideoBytes int64
}

// NewUploadHandler builds the handler with the configured size caps in
// megabytes; non-positive caps fall back to the defaults.
func NewUploadHandler(store storage.MediaStore, baseURL string, maxImageMB, maxVideoMB int) *UploadHandler {
	if maxImageMB <= 0 {
		maxImageMB = defaultMaxImageMB
	}
	if maxVideoMB <= 0 {
		maxVideoMB = defaultMaxVideoMB
	}
	return &UploadHandler{
		Store:         store,
		BaseURL:       strings.TrimRight(baseURL, "/"),
		maxImageBytes: int64(maxImageMB) << 20,
		maxVideoBytes: int64(maxVideoMB) << 20,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxVideoBytes+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, apierror.Validation("El archivo excede el tamano permitido"))
		return
	}

	file, header, err := r.FormFile("archivo")
	if err != nil {
		respondError(w, apierror.Validation("El campo archivo es requerido"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	kind, ok := allowedExtensions[ext]
	if !ok {
		respondError(w, apierror.Validation("Tipo de archivo no permitido"))
		return
	}

	limit := h.maxImageBytes
	if kind == "video" {
		limit = h.maxVideoBytes
	}
	if header.Size > limit {
		respondError(w, apierror.Validation("El archivo excede el tamano permitido"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	filename := uuid.New().String() + ext

	if err := h.Store.Save(r.Context(), filename, contentType, file); err != nil {
		respondError(w, err)
		return
	}
	metrics.UploadsTotal.WithLabelValues(kind).Inc()

	respondJSON(w, http.StatusCreated, map[string]string{
		"filename": filename,
		"url":      fmt.Sprintf("%s/uploads/%s", h.BaseURL, filename),
		"tipo":     kind,
	})
}
