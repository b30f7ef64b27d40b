package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mangashelf/mangashelf/internal/archive"
	"github.com/mangashelf/mangashelf/internal/database"
	"github.com/mangashelf/mangashelf/internal/database/catalog"
	"github.com/mangashelf/mangashelf/internal/database/favourites"
	"github.com/mangashelf/mangashelf/internal/database/sync"
	"github.com/mangashelf/mangashelf/internal/database/titles"
	"github.com/mangashelf/mangashelf/internal/http"
	"github.com/mangashelf/mangashelf/internal/library"
	"github.com/mangashelf/mangashelf/internal/scanner"
	"github.com/mangashelf/mangashelf/internal/scheduler"
	"github.com/mangashelf/mangashelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Scanner write path
var _ scanner.Catalog = (*catalog.Repository)(nil)

// Query façade stores
var _ library.TitleStore = (*titles.Repository)(nil)
var _ library.FavoritesStore = (*favourites.Repository)(nil)
var _ library.FolderStore = (*catalog.Repository)(nil)
var _ library.StatsProvider = (*database.Database)(nil)
var _ library.ProgressStore = (*sync.Repository)(nil)

// =============================================================================
// Archive Reader
// =============================================================================

var _ scanner.PageCounter = (*archive.Reader)(nil)
var _ library.ImageExtractor = (*archive.Reader)(nil)

// =============================================================================
// Scanning
// =============================================================================

// ProgressReporter implementations
var _ scanner.ProgressReporter = (*sync.Repository)(nil)

// Scan latch
var _ scanner.Runner = (*scanner.Scanner)(nil)
var _ library.ScanCoordinator = (*scanner.Coordinator)(nil)
var _ tasks.ScanRunner = (*scanner.Coordinator)(nil)

// Periodic rescans
var _ library.RescanSchedule = (*scheduler.RescanScheduler)(nil)

// =============================================================================
// HTTP
// =============================================================================

var _ http.LibraryService = (*library.Service)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.Pinger = (*database.Database)(nil)
