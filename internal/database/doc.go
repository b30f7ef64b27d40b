// Package database provides the catalog store for the library.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, stats
//	├── catalog/         # Scanner-facing inserts (folders, titles, genres, chapters)
//	├── titles/          # Listing, detail and chapter navigation queries
//	├── favourites/      # Favorite toggling
//	└── sync/            # Scan progress tracking
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./mangashelf.db")
//
//	catalogRepo := catalog.NewRepository(db.DB)
//	titlesRepo := titles.NewRepository(db.DB)
//
//	folder, _, err := catalogRepo.EnsureBaseFolder("/srv/manga")
//	list, err := titlesRepo.ListTitles(folder.ID, entities.TitleFilter{})
//
// # Drivers
//
// The default build uses gorm.io/driver/sqlite (cgo). Building with
// -tags alternative_driver switches to github.com/glebarez/sqlite.
// Both enable foreign keys so the cascade rules on the schema apply.
package database
