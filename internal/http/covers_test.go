package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangashelf/mangashelf/internal/covers"
)

func TestCoversController_Serve(t *testing.T) {
	s := newTestServer(t, nil)
	s.seed(t)

	t.Run("serves the recorded cover URL", func(t *testing.T) {
		page := decode[titlePage](t, s.do(t, "GET", "/api/titles", ""))
		coverPath := strings.TrimPrefix(page.Data[0].CoverURL, "http://localhost:3001")

		w := s.do(t, "GET", coverPath, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, w.Body.Bytes())
	})

	t.Run("serves names with reserved characters", func(t *testing.T) {
		file := filepath.Join(mkdirAll(t, s.root, "Fist & Star; Vol=1"), "cover (1)+!.jpg")
		require.NoError(t, os.WriteFile(file, []byte("cover"), 0o644))

		url, err := covers.BuildURL(testStaticBaseURL, s.root, file)
		require.NoError(t, err)
		assert.NotContains(t, url, "&")

		w := s.do(t, "GET", strings.TrimPrefix(url, "http://localhost:3001"), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cover", w.Body.String())
	})

	t.Run("missing file is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, "GET", "/manga/Berserk/nope.jpg", "").Code)
	})

	t.Run("directory is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, "GET", "/manga/Berserk", "").Code)
	})

	t.Run("traversal stays inside the root", func(t *testing.T) {
		w := s.do(t, "GET", "/manga/..%2F..%2Fetc%2Fpasswd", "")
		assert.NotEqual(t, http.StatusOK, w.Code)
	})
}
