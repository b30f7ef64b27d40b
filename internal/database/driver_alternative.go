//go:build alternative_driver

package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// openDriver uses the pure Go sqlite driver, for builds without cgo.
func openDriver(dbPath string, gormConfig *gorm.Config) (*gorm.DB, error) {
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	return gorm.Open(sqlite.Open(dsn), gormConfig)
}
