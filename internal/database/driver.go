//go:build !alternative_driver

package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openDriver uses the cgo sqlite driver.
func openDriver(dbPath string, gormConfig *gorm.Config) (*gorm.DB, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	return gorm.Open(sqlite.Open(dsn), gormConfig)
}
