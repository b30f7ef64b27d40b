// Package catalog provides the insert-if-absent operations the library
// scanner uses to reconcile a directory tree into the catalog.
//
// Every write here is idempotent on its natural key: base folders on path,
// titles on (base folder, name), genres on name, title/genre links on the
// pair, chapters on file path. Existing rows are never refreshed.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	folder, created, err := repo.EnsureBaseFolder("/srv/manga")
package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mangashelf/mangashelf/internal/entities"
)

// Repository handles scanner-side catalog writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EnsureBaseFolder returns the base folder for path, inserting it with the
// current time when absent. The bool reports whether a row was created.
func (r *Repository) EnsureBaseFolder(path string) (*entities.BaseFolder, bool, error) {
	folder, err := r.FindBaseFolder(path)
	if err == nil {
		return folder, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	folder = &entities.BaseFolder{
		Path:          path,
		LastScannedAt: time.Now(),
	}
	if err := r.db.Omit(clause.Associations).Create(folder).Error; err != nil {
		return nil, false, err
	}
	return folder, true, nil
}

// FindBaseFolder looks a base folder up by its absolute path.
func (r *Repository) FindBaseFolder(path string) (*entities.BaseFolder, error) {
	var folder entities.BaseFolder
	if err := r.db.Where("path = ?", path).First(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// TouchBaseFolder records the end of a scan.
func (r *Repository) TouchBaseFolder(id uint, at time.Time) error {
	return r.db.Model(&entities.BaseFolder{}).
		Where("id = ?", id).
		Update("last_scanned_at", at).Error
}

// FindOrCreateTitle returns the title with the same base folder and name,
// or inserts candidate. Fields of an existing title are left untouched.
func (r *Repository) FindOrCreateTitle(candidate *entities.Title) (*entities.Title, bool, error) {
	var existing entities.Title
	err := r.db.Where("base_folder_id = ? AND name = ?", candidate.BaseFolderID, candidate.Name).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := r.db.Omit(clause.Associations).Create(candidate).Error; err != nil {
		return nil, false, err
	}
	return candidate, true, nil
}

// FindOrCreateGenre returns the genre named name, creating it on first sight.
func (r *Repository) FindOrCreateGenre(name string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.Where(entities.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// LinkGenre associates a genre with a title. Existing links are ignored.
func (r *Repository) LinkGenre(titleID, genreID uint) error {
	link := entities.TitleGenre{TitleID: titleID, GenreID: genreID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&link).Error
}

// ChapterExists reports whether a chapter row already exists for filePath.
func (r *Repository) ChapterExists(filePath string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Chapter{}).Where("file_path = ?", filePath).Count(&count).Error
	return count > 0, err
}

// NextSequenceIndex returns the current maximum sequence index of the title plus one.
func (r *Repository) NextSequenceIndex(titleID uint) (int, error) {
	var maxIndex int
	err := r.db.Model(&entities.Chapter{}).
		Where("title_id = ?", titleID).
		Select("COALESCE(MAX(sequence_index), 0)").
		Scan(&maxIndex).Error
	if err != nil {
		return 0, err
	}
	return maxIndex + 1, nil
}

// CreateChapter inserts a chapter row.
func (r *Repository) CreateChapter(chapter *entities.Chapter) error {
	return r.db.Create(chapter).Error
}
