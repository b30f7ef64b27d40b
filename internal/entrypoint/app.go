package entrypoint

import (
	"fmt"
	"log"

	"github.com/mangashelf/mangashelf/internal/archive"
	"github.com/mangashelf/mangashelf/internal/config"
	"github.com/mangashelf/mangashelf/internal/database"
	"github.com/mangashelf/mangashelf/internal/database/catalog"
	"github.com/mangashelf/mangashelf/internal/database/favourites"
	"github.com/mangashelf/mangashelf/internal/database/sync"
	"github.com/mangashelf/mangashelf/internal/database/titles"
	"github.com/mangashelf/mangashelf/internal/library"
	"github.com/mangashelf/mangashelf/internal/scanner"
)

// App holds the catalog, scanner and façade shared by the server and the
// CLI commands.
type App struct {
	Config   *config.Config
	DB       *database.Database
	Catalog  *catalog.Repository
	Titles   *titles.Repository
	Progress *sync.Repository
	Reader   *archive.Reader
	Scanner  *scanner.Scanner
	Scans    *scanner.Coordinator
	Library  *library.Service
}

// NewApp opens the catalog and wires the scanner and query façade.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}

	cat := catalog.NewRepository(db.DB)
	progress := sync.NewRepository(db.DB)
	reader := archive.NewReader(cfg.Archive.MaxEntryBytes)

	sc := scanner.New(cat, reader, cfg.Library.StaticBaseURL)
	sc.SetProgressReporter(progress)
	scans := scanner.NewCoordinator(sc)

	titleRepo := titles.NewRepository(db.DB)
	svc := library.NewService(library.Dependencies{
		Titles:    titleRepo,
		Favorites: favourites.NewRepository(db.DB),
		Folders:   cat,
		Images:    reader,
		Scans:     scans,
		Progress:  progress,
		Stats:     db,
	}, cfg.Library.Root)

	return &App{
		Config:   cfg,
		DB:       db,
		Catalog:  cat,
		Titles:   titleRepo,
		Progress: progress,
		Reader:   reader,
		Scanner:  sc,
		Scans:    scans,
		Library:  svc,
	}, nil
}

// Close closes the catalog.
func (a *App) Close() {
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing catalog: %v", err)
	}
}
