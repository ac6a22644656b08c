package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/storage"

	"github.com/gorilla/mux"
)

// MediaHandler serves stored uploads. The filename is validated before
// any filesystem or bucket access; traversal attempts never reach the
// store.
type MediaHandler struct {
	Store storage.MediaStore
}

func NewMediaHandler(store storage.MediaStore) *MediaHandler {
	return &MediaHandler{Store: store}
}

func (h *MediaHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	if !storage.ValidFilename(filename) {
		respondError(w, apierror.Validation("invalid filename"))
		return
	}

	f, err := h.Store.Open(r.Context(), filename)
	if err != nil {
		respondError(w, apierror.NotFound("Archivo no encontrado"))
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	io.Copy(w, f)
}
