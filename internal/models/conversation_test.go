package models

import (
	"encoding/base64"
	"testing"

	"botpanel-backend/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

	contentType, data, err := DecodeDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, payload, data)
}

func TestDecodeDataURLRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"http://example.com/imagen.jpg",
		"data:image/jpeg,sinbase64",
		"data:image/jpeg;base64,@@@no-es-base64@@@",
	}
	for _, in := range cases {
		_, _, err := DecodeDataURL(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, apierror.IsKind(err, apierror.KindValidation), "input %q", in)
	}
}
