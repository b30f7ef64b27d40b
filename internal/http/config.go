package http

import (
	"github.com/mangashelf/mangashelf/internal/covers"
)

// RouterConfig holds all dependencies needed to create the router.
// Routes for nil dependencies are not registered.
type RouterConfig struct {
	// Library is the query façade behind every /api route.
	Library LibraryService

	// Database backs the health check.
	Database Pinger

	// CoverMount serves files under the static prefix from the active root.
	CoverMount *covers.Mount
	// StaticPath is the URL prefix of the cover mount, e.g. "/manga".
	StaticPath string

	// TaskQueue, when set, runs manual scans in the background queue
	// and exposes task status.
	TaskQueue TaskQueue

	Version string
}
