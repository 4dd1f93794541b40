package services

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukenewport-prog/nptgpt/models"
)

func TestImageEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("encodes a local upload", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "uploads"), 0o755))
		raw := []byte{0x89, 0x50, 0x4e, 0x47}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "uploads", "pic.png"), raw, 0o644))

		encoder := NewImageEncoder(dir)
		image, err := encoder.Encode("/uploads/pic.png")

		require.NoError(t, err)
		assert.Equal(t, "image/png", image.MimeType)
		assert.Equal(t, base64.StdEncoding.EncodeToString(raw), image.Data)
	})

	t.Run("missing file is resource unavailable", func(t *testing.T) {
		t.Parallel()

		encoder := NewImageEncoder(t.TempDir())
		_, err := encoder.Encode("/uploads/nope.jpg")

		assert.ErrorIs(t, err, models.ErrResourceUnavailable)
	})

	t.Run("reference cannot escape the base directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		encoder := NewImageEncoder(filepath.Join(dir, "public"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.jpg"), []byte("x"), 0o644))

		_, err := encoder.Encode("/../secret.jpg")
		assert.ErrorIs(t, err, models.ErrResourceUnavailable)
	})

	t.Run("fetches a remote reference", func(t *testing.T) {
		t.Parallel()

		raw := []byte("gif-bytes")
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(raw)
		}))
		defer srv.Close()

		encoder := NewImageEncoder(t.TempDir())
		image, err := encoder.Encode(srv.URL + "/pic.gif")

		require.NoError(t, err)
		assert.Equal(t, "image/gif", image.MimeType)
		assert.Equal(t, base64.StdEncoding.EncodeToString(raw), image.Data)
	})

	t.Run("remote failure is resource unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		encoder := NewImageEncoder(t.TempDir())
		_, err := encoder.Encode(srv.URL + "/pic.png")

		assert.ErrorIs(t, err, models.ErrResourceUnavailable)
	})
}

func TestMimeTypeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/png", MimeTypeFor("/uploads/a.PNG"))
	assert.Equal(t, "image/gif", MimeTypeFor("/uploads/a.gif"))
	assert.Equal(t, "image/jpeg", MimeTypeFor("/uploads/a.jpg"))
	assert.Equal(t, "image/jpeg", MimeTypeFor("/uploads/a.webp"))
	assert.Equal(t, "image/jpeg", MimeTypeFor("/uploads/noext"))
}
