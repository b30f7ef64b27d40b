package favourites

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mangashelf/mangashelf/internal/database"
	"github.com/mangashelf/mangashelf/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	t.Helper()
	db, err := database.NewDatabaseWithLogLevel(filepath.Join(t.TempDir(), "catalog.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.DB, NewRepository(db.DB)
}

func createTestTitle(t *testing.T, db *gorm.DB, name string) *entities.Title {
	folder := &entities.BaseFolder{Path: "/srv/manga"}
	require.NoError(t, db.Where(entities.BaseFolder{Path: folder.Path}).FirstOrCreate(folder).Error)

	title := &entities.Title{BaseFolderID: folder.ID, Name: name}
	require.NoError(t, db.Create(title).Error)
	return title
}

func isFavorited(t *testing.T, db *gorm.DB, id uint) bool {
	var title entities.Title
	require.NoError(t, db.First(&title, id).Error)
	return title.Favorited
}

func TestRepository_SetFavorited_RoundTrip(t *testing.T) {
	db, repo := setupTestDB(t)
	title := createTestTitle(t, db, "Naruto")

	result, err := repo.SetFavorited(title.ID, true)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(1), result.AffectedRows)
	assert.True(t, isFavorited(t, db, title.ID))

	result, err = repo.SetFavorited(title.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.AffectedRows)
	assert.False(t, isFavorited(t, db, title.ID))
}

func TestRepository_SetFavorited_SameValueTwice(t *testing.T) {
	db, repo := setupTestDB(t)
	title := createTestTitle(t, db, "Naruto")

	for i := 0; i < 2; i++ {
		result, err := repo.SetFavorited(title.ID, true)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, int64(1), result.AffectedRows)
	}
}

func TestRepository_SetFavorited_UnknownTitle(t *testing.T) {
	_, repo := setupTestDB(t)

	result, err := repo.SetFavorited(404, true)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Zero(t, result.AffectedRows)
}

func TestRepository_GetFavoriteCount(t *testing.T) {
	db, repo := setupTestDB(t)
	a := createTestTitle(t, db, "Naruto")
	createTestTitle(t, db, "Bleach")

	_, err := repo.SetFavorited(a.ID, true)
	require.NoError(t, err)

	count, err := repo.GetFavoriteCount(a.BaseFolderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
