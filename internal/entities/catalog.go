package entities

import (
	"time"
)

// UnknownPlaceholder fills metadata fields that neither the sidecar file
// nor the directory name can provide.
const UnknownPlaceholder = "Unknown"

// BaseFolder is a root directory the library has been pointed at.
type BaseFolder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Path          string    `gorm:"uniqueIndex;size:4096;not null" json:"path"`
	LastScannedAt time.Time `json:"last_scanned_at"`
	Titles        []Title   `gorm:"foreignKey:BaseFolderID;constraint:OnDelete:CASCADE" json:"-"`
}

// Title is one series, discovered as a top-level subdirectory of a BaseFolder.
// Identity is the name within its BaseFolder, not the directory path.
type Title struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BaseFolderID uint      `gorm:"not null;uniqueIndex:idx_titles_folder_name" json:"base_folder_id"`
	Name         string    `gorm:"not null;size:512;uniqueIndex:idx_titles_folder_name" json:"name"`
	CoverURL     string    `gorm:"size:4096" json:"cover_url"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Artist       string    `gorm:"size:256" json:"artist"`
	Writer       string    `gorm:"size:256" json:"writer"`
	Favorited    bool      `gorm:"not null;default:false" json:"favorited"`
	ModifiedAt   time.Time `json:"modified_at"`
	Chapters     []Chapter `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
}

// Genre is shared across titles and created lazily on first sight.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// TitleGenre is the join row between a Title and a Genre.
type TitleGenre struct {
	TitleID uint  `gorm:"primaryKey;autoIncrement:false" json:"title_id"`
	GenreID uint  `gorm:"primaryKey;autoIncrement:false" json:"genre_id"`
	Title   Title `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
	Genre   Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

// Chapter is one archive file inside a Title directory. Rows are inserted
// once per file path and never refreshed.
type Chapter struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TitleID       uint       `gorm:"not null;index" json:"title_id"`
	Name          string     `gorm:"not null;size:512" json:"name"`
	DateAdded     time.Time  `json:"date_added"`
	LastOpenedAt  *time.Time `json:"last_opened_at,omitempty"`
	LastPageRead  *int       `json:"last_page_read,omitempty"`
	FilePath      string     `gorm:"not null;size:4096;uniqueIndex" json:"file_path"`
	SequenceIndex int        `gorm:"not null;index" json:"sequence_index"`
	PageCount     int        `gorm:"not null;default:0" json:"page_count"`
}

func (BaseFolder) TableName() string {
	return "base_folders"
}

func (Title) TableName() string {
	return "titles"
}

func (Genre) TableName() string {
	return "genres"
}

func (TitleGenre) TableName() string {
	return "title_genres"
}

func (Chapter) TableName() string {
	return "chapters"
}
