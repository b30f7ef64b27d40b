// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Catalog Interfaces
//
//   - scanner.Catalog: scanner write path (internal/scanner/scanner.go)
//   - library.TitleStore: listing, detail and navigation queries (internal/library/interfaces.go)
//   - library.FavoritesStore: favorite flag (internal/library/interfaces.go)
//   - library.FolderStore: root to base folder lookup (internal/library/interfaces.go)
//
// ## Archive Interfaces
//
//   - scanner.PageCounter: page counts during a scan (internal/scanner/scanner.go)
//   - library.ImageExtractor: page payloads for the reader (internal/library/interfaces.go)
//
// ## Scan Interfaces
//
//   - scanner.Runner: one scan of a root (internal/scanner/coordinator.go)
//   - scanner.ProgressReporter: scan progress reporting (internal/scanner/scanner.go)
//   - library.ScanCoordinator: process-wide scan latch (internal/library/interfaces.go)
//   - tasks.ScanRunner: background scans (internal/tasks/scan_library.go)
//   - scheduler.ScanTrigger: periodic rescans (internal/scheduler/rescan.go)
//
// ## HTTP Interfaces
//
//   - TitleReader, ChapterReader, FavouritesWriter, LibraryManager (internal/http/stores.go)
//   - TaskQueue, Pinger (internal/http/stores.go)
//
// # Adding a New Archive Format
//
// Chapters are opened by archive.Reader. To read another container format
// (e.g. .cbr), implement both archive interfaces:
//
//	type RarReader struct{}
//
//	func (r *RarReader) CountImagePages(path string) (int, error)
//	func (r *RarReader) ExtractImages(path string) ([]archive.Page, error)
//
//	var _ scanner.PageCounter = (*RarReader)(nil)
//	var _ library.ImageExtractor = (*RarReader)(nil)
//
// then dispatch on the file extension in entrypoint.NewApp.
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reading history):
//
//  1. Create sub-package: internal/database/history/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check:
//
//     var _ library.HistoryStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
package interfaces
