package library

import (
	"context"
	"time"

	"github.com/mangashelf/mangashelf/internal/archive"
	"github.com/mangashelf/mangashelf/internal/entities"
	"github.com/mangashelf/mangashelf/internal/scanner"
)

// TitleStore is the read side of the catalog.
type TitleStore interface {
	ListTitles(baseFolderID uint, filter entities.TitleFilter) ([]entities.TitleSummary, error)
	ListGenres(baseFolderID uint) ([]string, error)
	GetTitleDetail(titleID uint) (*entities.TitleDetail, error)
	GetChapterDetail(titleID uint, sequenceIndex int) (*entities.ChapterDetail, error)
	GetChapterByPath(filePath string) (*entities.Chapter, error)
}

// FavoritesStore toggles and counts the favorite flag.
type FavoritesStore interface {
	SetFavorited(titleID uint, favorited bool) (entities.FavoriteResult, error)
	GetFavoriteCount(baseFolderID uint) (int64, error)
}

// FolderStore resolves the active root to its base folder row.
type FolderStore interface {
	FindBaseFolder(path string) (*entities.BaseFolder, error)
}

// ImageExtractor decodes chapter pages.
type ImageExtractor interface {
	ExtractImages(archivePath string) ([]archive.Page, error)
}

// ScanCoordinator is the process-wide scan latch.
type ScanCoordinator interface {
	Begin(root string) (*scanner.Run, bool)
	BeginFor(ctx context.Context, root string) (*scanner.Run, bool, error)
	Current() *scanner.Run
	Last() *scanner.Run
}

// ProgressStore reads the persisted scan progress. IsSyncRunning fails a
// running row that has gone stale.
type ProgressStore interface {
	GetSyncProgress() (*entities.SyncProgress, error)
	IsSyncRunning() (bool, error)
}

// RescanSchedule is the periodic rescan job.
type RescanSchedule interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
	Triggers() int64
}

// StatsProvider counts catalog rows.
type StatsProvider interface {
	Stats() (entities.CatalogStats, error)
}
