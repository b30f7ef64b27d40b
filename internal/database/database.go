package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mangashelf/mangashelf/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the catalog at dbPath and migrates the schema.
func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithLogLevel(dbPath, logger.Warn)
}

// NewDatabaseWithLogLevel is NewDatabase with an explicit gorm log level.
func NewDatabaseWithLogLevel(dbPath string, level logger.LogLevel) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create catalog directory: %v", ErrCatalogUnavailable, err)
		}
	}

	db, err := openDriver(dbPath, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrCatalogUnavailable, err)
	}

	err = db.AutoMigrate(
		&entities.BaseFolder{},
		&entities.Title{},
		&entities.Genre{},
		&entities.TitleGenre{},
		&entities.Chapter{},
		&entities.SyncProgress{},
	)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("%w: migrate: %v", ErrCatalogUnavailable, err)
	}

	log.Printf("Catalog initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

// ParseLogLevel maps a config string onto a gorm log level. Unknown values select Warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the catalog file is still reachable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return nil
}

// Stats counts rows in every catalog table.
func (d *Database) Stats() (entities.CatalogStats, error) {
	var stats entities.CatalogStats
	counts := []struct {
		model any
		dest  *int64
	}{
		{&entities.BaseFolder{}, &stats.BaseFolders},
		{&entities.Title{}, &stats.Titles},
		{&entities.Genre{}, &stats.Genres},
		{&entities.TitleGenre{}, &stats.TitleGenres},
		{&entities.Chapter{}, &stats.Chapters},
	}
	for _, c := range counts {
		if err := d.DB.Model(c.model).Count(c.dest).Error; err != nil {
			return stats, err
		}
	}
	return stats, nil
}
