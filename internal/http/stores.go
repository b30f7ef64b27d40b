package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mangashelf/mangashelf/internal/entities"
	"github.com/mangashelf/mangashelf/internal/library"
	"github.com/mangashelf/mangashelf/internal/scanner"
)

// Interfaces below are consumed by controllers. Each controller depends on
// the narrowest set of operations it needs; *library.Service satisfies all
// of the library-facing ones.

// TitleReader provides the catalog browsing queries.
type TitleReader interface {
	ListTitles(ctx context.Context, filter entities.TitleFilter) ([]entities.TitleSummary, error)
	ListGenres(ctx context.Context) ([]string, error)
	GetTitleDetail(ctx context.Context, titleID uint) (*entities.TitleDetail, error)
}

// ChapterReader provides chapter navigation and page extraction.
type ChapterReader interface {
	GetChapterDetail(ctx context.Context, titleID uint, sequenceIndex int) (*entities.ChapterDetail, error)
	GetChapterImages(ctx context.Context, chapterPath string) ([]library.Image, error)
}

// FavouritesWriter toggles the favorite flag of a title.
type FavouritesWriter interface {
	SetFavorited(ctx context.Context, titleID uint, favorited bool) (entities.FavoriteResult, error)
}

// LibraryManager owns the active root and scan lifecycle.
type LibraryManager interface {
	Root() string
	SetRoot(ctx context.Context, path string) (*scanner.Run, bool, error)
	StartScan() (*scanner.Run, bool)
	Overview() (*library.Overview, error)
	ScanStatus() (*library.ScanStatus, error)
}

// LibraryService is the full façade the router wires into controllers.
type LibraryService interface {
	TitleReader
	ChapterReader
	FavouritesWriter
	LibraryManager
}

// ScanEnqueuer hands scans to the background task queue.
type ScanEnqueuer interface {
	EnqueueScan(root string) (string, error)
}

// TaskStatusReader looks up background task state.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TaskQueue is the subset of the task client used by the API.
type TaskQueue interface {
	ScanEnqueuer
	TaskStatusReader
}

// Pinger reports catalog connectivity.
type Pinger interface {
	Ping() error
}
