package covers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "library")

	t.Run("escapes each segment", func(t *testing.T) {
		got, err := BuildURL("http://localhost:3001/manga/", root, filepath.Join(root, "One Piece", "cover #1?.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3001/manga/One%20Piece/cover%20%231%3F.jpg", got)
	})

	t.Run("escapes reserved characters", func(t *testing.T) {
		got, err := BuildURL("http://localhost:3001/manga", root, filepath.Join(root, "a:b@c&d=e+f$g,h;i", "Vol (1)!~*'.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3001/manga/a%3Ab%40c%26d%3De%2Bf%24g%2Ch%3Bi/Vol%20(1)!~*'.jpg", got)
	})

	t.Run("keeps unicode names addressable", func(t *testing.T) {
		got, err := BuildURL("http://localhost:3001/manga", root, filepath.Join(root, "進撃", "01.png"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3001/manga/%E9%80%B2%E6%92%83/01.png", got)
	})

	t.Run("rejects files outside the root", func(t *testing.T) {
		_, err := BuildURL("http://x/manga", root, filepath.Join(string(filepath.Separator), "elsewhere", "a.jpg"))
		assert.ErrorIs(t, err, ErrOutsideRoot)
	})
}

func TestMountResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Naruto"), 0o755))
	cover := filepath.Join(root, "Naruto", "cover.jpg")
	require.NoError(t, os.WriteFile(cover, []byte("img"), 0o644))

	mount := NewMount(func() string { return root })

	t.Run("resolves a file", func(t *testing.T) {
		got, err := mount.Resolve("Naruto/cover.jpg")
		require.NoError(t, err)
		assert.Equal(t, cover, got)
	})

	t.Run("traversal stays inside root", func(t *testing.T) {
		_, err := mount.Resolve("../../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("directories are not served", func(t *testing.T) {
		_, err := mount.Resolve("Naruto")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
