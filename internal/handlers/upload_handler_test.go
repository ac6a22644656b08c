package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"botpanel-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (s *memStore) Save(_ context.Context, filename, _ string, data io.Reader) error {
	if !storage.ValidFilename(filename) {
		return assert.AnError
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.files[filename] = b
	return nil
}

func (s *memStore) Open(_ context.Context, filename string) (io.ReadCloser, error) {
	b, ok := s.files[filename]
	if !ok {
		return nil, assert.AnError
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("archivo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadStoresUnderGeneratedName(t *testing.T) {
	store := newMemStore()
	h := NewUploadHandler(store, "https://panel.example.com", 5, 50)

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartUpload(t, "foto de perfil.jpg", []byte("imagen")))

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.NotEqual(t, "foto de perfil.jpg", resp["filename"], "the original name must never be used")
	assert.True(t, storage.ValidFilename(resp["filename"]))
	assert.Equal(t, "imagen", resp["tipo"])
	assert.Equal(t, "https://panel.example.com/uploads/"+resp["filename"], resp["url"])
	assert.Contains(t, store.files, resp["filename"])
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	store := newMemStore()
	h := NewUploadHandler(store, "https://panel.example.com", 5, 50)

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartUpload(t, "script.sh", []byte("#!/bin/sh")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, store.files)
}

func TestUploadRequiresFileField(t *testing.T) {
	store := newMemStore()
	h := NewUploadHandler(store, "https://panel.example.com", 5, 50)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("otro", "campo"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadHonorsConfiguredImageCap(t *testing.T) {
	store := newMemStore()
	h := NewUploadHandler(store, "https://panel.example.com", 1, 50)

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartUpload(t, "grande.jpg", bytes.Repeat([]byte("x"), 2<<20)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "excede el tamano permitido")
	assert.Empty(t, store.files)
}

func TestServeUploadRejectsTraversalBeforeStore(t *testing.T) {
	store := newMemStore()
	store.files["secreto.jpg"] = []byte("x")
	h := NewMediaHandler(store)

	for _, name := range []string{"../etc/passwd", "..", ".env", "a/b.jpg"} {
		req := httptest.NewRequest("GET", "/uploads/x", nil)
		req = mux.SetURLVars(req, map[string]string{"filename": name})
		rr := httptest.NewRecorder()
		h.ServeUpload(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, name)
		assert.Contains(t, rr.Body.String(), "invalid filename", name)
	}
}

func TestServeUploadStreamsStoredFile(t *testing.T) {
	store := newMemStore()
	store.files["abc.png"] = []byte("contenido png")
	h := NewMediaHandler(store)

	req := httptest.NewRequest("GET", "/uploads/abc.png", nil)
	req = mux.SetURLVars(req, map[string]string{"filename": "abc.png"})
	rr := httptest.NewRecorder()
	h.ServeUpload(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "contenido png", rr.Body.String())
}

func TestServeUploadMissingFileIs404(t *testing.T) {
	h := NewMediaHandler(newMemStore())

	req := httptest.NewRequest("GET", "/uploads/nada.jpg", nil)
	req = mux.SetURLVars(req, map[string]string{"filename": "nada.jpg"})
	rr := httptest.NewRecorder()
	h.ServeUpload(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
