// Package library is the boundary between the catalog and its callers: the
// HTTP API and the CLI. It owns the active library root and makes every
// query wait for an in-flight scan before reading the catalog.
package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mangashelf/mangashelf/internal/archive"
	"github.com/mangashelf/mangashelf/internal/entities"
	"github.com/mangashelf/mangashelf/internal/scanner"
)

var (
	// ErrInvalidArgument means a required identifier is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidRoot means a proposed library root is not a readable directory.
	ErrInvalidRoot = errors.New("invalid library root")
)

// Dependencies groups the collaborators of a Service.
type Dependencies struct {
	Titles    TitleStore
	Favorites FavoritesStore
	Folders   FolderStore
	Images    ImageExtractor
	Scans     ScanCoordinator
	Progress  ProgressStore
	Stats     StatsProvider
}

// Service is the query façade over the catalog and the archive reader.
type Service struct {
	deps Dependencies

	mu     sync.RWMutex
	root   string
	rescan RescanSchedule
}

// NewService creates a Service scoped to root.
func NewService(deps Dependencies, root string) *Service {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Service{deps: deps, root: root}
}

// Root returns the active library root.
func (s *Service) Root() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// SetRoot points the library at a new root and scans it. Catalog entries of
// other roots are kept. A scan of the previous root that is still running is
// allowed to finish first, and a running scan of the new root is joined;
// started reports whether a new scan was begun.
func (s *Service) SetRoot(ctx context.Context, path string) (run *scanner.Run, started bool, err error) {
	if strings.TrimSpace(path) == "" {
		return nil, false, fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, false, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}

	s.mu.Lock()
	s.root = abs
	s.mu.Unlock()
	log.Printf("[SCAN] Library root set to %s", abs)

	return s.deps.Scans.BeginFor(ctx, abs)
}

// SetRescanSchedule attaches the periodic rescan job reported by Overview.
func (s *Service) SetRescanSchedule(rescan RescanSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rescan = rescan
}

// StartScan scans the active root, or joins the scan already running.
func (s *Service) StartScan() (*scanner.Run, bool) {
	return s.deps.Scans.Begin(s.Root())
}

// WaitForScan blocks until no scan is running.
func (s *Service) WaitForScan(ctx context.Context) error {
	run := s.deps.Scans.Current()
	if run == nil {
		return nil
	}
	select {
	case <-run.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// baseFolder waits for a running scan and returns the base folder of the
// active root, or nil when the root has never been scanned.
func (s *Service) baseFolder(ctx context.Context) (*entities.BaseFolder, error) {
	if err := s.WaitForScan(ctx); err != nil {
		return nil, err
	}
	folder, err := s.deps.Folders.FindBaseFolder(s.Root())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// ListTitles lists the titles of the active root.
func (s *Service) ListTitles(ctx context.Context, filter entities.TitleFilter) ([]entities.TitleSummary, error) {
	folder, err := s.baseFolder(ctx)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return []entities.TitleSummary{}, nil
	}
	return s.deps.Titles.ListTitles(folder.ID, filter)
}

// ListGenres lists the genres used under the active root.
func (s *Service) ListGenres(ctx context.Context) ([]string, error) {
	folder, err := s.baseFolder(ctx)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return []string{}, nil
	}
	return s.deps.Titles.ListGenres(folder.ID)
}

// GetTitleDetail returns one title with its chapters.
func (s *Service) GetTitleDetail(ctx context.Context, titleID uint) (*entities.TitleDetail, error) {
	if titleID == 0 {
		return nil, fmt.Errorf("%w: title id is required", ErrInvalidArgument)
	}
	if err := s.WaitForScan(ctx); err != nil {
		return nil, err
	}
	return s.deps.Titles.GetTitleDetail(titleID)
}

// GetChapterDetail returns a chapter with its navigation state.
func (s *Service) GetChapterDetail(ctx context.Context, titleID uint, sequenceIndex int) (*entities.ChapterDetail, error) {
	if titleID == 0 {
		return nil, fmt.Errorf("%w: title id is required", ErrInvalidArgument)
	}
	if sequenceIndex < 1 {
		return nil, fmt.Errorf("%w: chapter index must be positive", ErrInvalidArgument)
	}
	if err := s.WaitForScan(ctx); err != nil {
		return nil, err
	}
	return s.deps.Titles.GetChapterDetail(titleID, sequenceIndex)
}

// GetChapterImages decodes the pages of a cataloged chapter. An unreadable
// archive or one without images yields an empty list; entries that fail to
// decompress are left out.
func (s *Service) GetChapterImages(ctx context.Context, chapterPath string) ([]Image, error) {
	if strings.TrimSpace(chapterPath) == "" {
		return nil, fmt.Errorf("%w: chapter path is required", ErrInvalidArgument)
	}
	if err := s.WaitForScan(ctx); err != nil {
		return nil, err
	}

	chapter, err := s.deps.Titles.GetChapterByPath(filepath.Clean(chapterPath))
	if err != nil {
		return nil, err
	}

	started := time.Now()
	pages, err := s.deps.Images.ExtractImages(chapter.FilePath)
	switch {
	case errors.Is(err, archive.ErrArchiveUnreadable), errors.Is(err, archive.ErrNoImagesFound):
		log.Printf("[ARCHIVE] %v", err)
		return []Image{}, nil
	case errors.Is(err, archive.ErrEntryUnreadable):
		log.Printf("[ARCHIVE] %s: skipped entries %v", chapter.FilePath, archive.FailedEntries(err))
	case err != nil:
		return nil, err
	}

	images := make([]Image, 0, len(pages))
	for _, page := range pages {
		images = append(images, NewImage(page))
	}
	log.Printf("[ARCHIVE] Extracted %d pages from %s in %s", len(images), chapter.FilePath, time.Since(started).Round(time.Millisecond))
	return images, nil
}

// SetFavorited writes the favorite flag of a title.
func (s *Service) SetFavorited(ctx context.Context, titleID uint, favorited bool) (entities.FavoriteResult, error) {
	if titleID == 0 {
		return entities.FavoriteResult{}, fmt.Errorf("%w: title id is required", ErrInvalidArgument)
	}
	if err := s.WaitForScan(ctx); err != nil {
		return entities.FavoriteResult{}, err
	}
	return s.deps.Favorites.SetFavorited(titleID, favorited)
}

// Overview describes the active library.
type Overview struct {
	Root          string                `json:"root"`
	BaseFolderID  uint                  `json:"base_folder_id,omitempty"`
	LastScannedAt *time.Time            `json:"last_scanned_at,omitempty"`
	Scanning      bool                  `json:"scanning"`
	Favorites     int64                 `json:"favorites"`
	Catalog       entities.CatalogStats `json:"catalog"`
	Rescan        *RescanOverview       `json:"rescan,omitempty"`
}

// RescanOverview reports the periodic rescan job.
type RescanOverview struct {
	Enabled   bool       `json:"enabled"`
	NextRunAt *time.Time `json:"next_run_at,omitempty"`
	Triggered int64      `json:"triggered"`
}

// Overview reports the active root and catalog counts without waiting for
// a running scan.
func (s *Service) Overview() (*Overview, error) {
	root := s.Root()
	overview := &Overview{
		Root:     root,
		Scanning: s.deps.Scans.Current() != nil,
	}

	folder, err := s.deps.Folders.FindBaseFolder(root)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if folder != nil {
		overview.BaseFolderID = folder.ID
		overview.LastScannedAt = &folder.LastScannedAt

		favorites, err := s.deps.Favorites.GetFavoriteCount(folder.ID)
		if err != nil {
			return nil, err
		}
		overview.Favorites = favorites
	}

	s.mu.RLock()
	rescan := s.rescan
	s.mu.RUnlock()
	if rescan != nil {
		overview.Rescan = &RescanOverview{
			Enabled:   rescan.IsRunning(),
			NextRunAt: rescan.GetNextRunTime(),
			Triggered: rescan.Triggers(),
		}
	}

	if s.deps.Stats != nil {
		stats, err := s.deps.Stats.Stats()
		if err != nil {
			return nil, err
		}
		overview.Catalog = stats
	}
	return overview, nil
}

// ScanStatus reports the running or last scan and its persisted progress.
type ScanStatus struct {
	Running    bool                   `json:"running"`
	Root       string                 `json:"root,omitempty"`
	StartedAt  *time.Time             `json:"started_at,omitempty"`
	Progress   *entities.SyncProgress `json:"progress,omitempty"`
	LastResult *scanner.Result        `json:"last_result,omitempty"`
}

// ScanStatus never blocks on a running scan. Running also covers a scan
// recorded by another process sharing the catalog; a recorded scan that
// stopped reporting progress is marked failed.
func (s *Service) ScanStatus() (*ScanStatus, error) {
	status := &ScanStatus{}
	if run := s.deps.Scans.Current(); run != nil {
		status.Running = true
		status.Root = run.Root
		status.StartedAt = &run.StartedAt
	} else if last := s.deps.Scans.Last(); last != nil {
		status.Root = last.Root
		status.StartedAt = &last.StartedAt
		status.LastResult, _ = last.Wait(context.Background())
	}

	if s.deps.Progress != nil {
		running, err := s.deps.Progress.IsSyncRunning()
		if err != nil {
			return nil, err
		}
		status.Running = status.Running || running

		progress, err := s.deps.Progress.GetSyncProgress()
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		status.Progress = progress
	}
	return status, nil
}
