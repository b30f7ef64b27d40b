// Package favourites provides database operations for favorite titles.
//
// Favorites live only in the catalog; the filesystem carries no marker.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	result, err := repo.SetFavorited(titleID, true)
package favourites

import (
	"gorm.io/gorm"

	"github.com/mangashelf/mangashelf/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SetFavorited writes the favorite flag of a title. The update is
// unconditional, so repeating the same value still affects one row.
func (r *Repository) SetFavorited(titleID uint, favorited bool) (entities.FavoriteResult, error) {
	result := r.db.Model(&entities.Title{}).
		Where("id = ?", titleID).
		Update("favorited", favorited)
	if result.Error != nil {
		return entities.FavoriteResult{}, result.Error
	}
	return entities.FavoriteResult{
		Success:      result.RowsAffected > 0,
		AffectedRows: result.RowsAffected,
	}, nil
}

// GetFavoriteCount returns the number of favorited titles in a base folder.
func (r *Repository) GetFavoriteCount(baseFolderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Title{}).
		Where("base_folder_id = ? AND favorited = ?", baseFolderID, true).
		Count(&count).Error
	return count, err
}
