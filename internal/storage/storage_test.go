package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidFilename(t *testing.T) {
	valid := []string{
		"a.jpg",
		"550e8400-e29b-41d4-a716-446655440000.png",
		"pregunta_12.mp4",
		"archivo-con-guiones.webp",
	}
	for _, name := range valid {
		assert.True(t, ValidFilename(name), name)
	}

	invalid := []string{
		"",
		"../etc/passwd",
		"..",
		".oculto",
		"sub/dir.jpg",
		"sub\\dir.jpg",
		"con espacio.jpg",
		"nul\x00byte.jpg",
		strings.Repeat("a", 201) + ".jpg",
	}
	for _, name := range invalid {
		assert.False(t, ValidFilename(name), name)
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("contenido de prueba")
	require.NoError(t, store.Save(context.Background(), "test.jpg", "image/jpeg", bytes.NewReader(content)))

	f, err := store.Open(context.Background(), "test.jpg")
	require.NoError(t, err)
	defer f.Close()

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Save(context.Background(), "../fuera.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = store.Open(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
