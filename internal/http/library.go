package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LibraryController manages the active root and library scans.
type LibraryController struct {
	library LibraryManager
	queue   ScanEnqueuer
}

// NewLibraryController creates a LibraryController. When queue is nil,
// manual scans run on the in-process coordinator.
func NewLibraryController(library LibraryManager, queue ScanEnqueuer) *LibraryController {
	return &LibraryController{library: library, queue: queue}
}

// SetRootRequest is the body of POST /api/library/root.
type SetRootRequest struct {
	Path string `json:"path" binding:"required"`
}

// ScanResponse describes a scan that was started or joined.
type ScanResponse struct {
	Root      string     `json:"root"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Started   bool       `json:"started"`
	TaskID    string     `json:"task_id,omitempty"`
}

// Overview handles GET /api/library
func (lc *LibraryController) Overview(c *gin.Context) {
	overview, err := lc.library.Overview()
	if err != nil {
		respondLibraryError(c, err, "library overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// SetRoot handles POST /api/library/root
// The new root is scanned in the background; the response does not wait
// for the scan to finish.
func (lc *LibraryController) SetRoot(c *gin.Context) {
	var req SetRootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "path is required")
		return
	}

	run, started, err := lc.library.SetRoot(c.Request.Context(), req.Path)
	if err != nil {
		respondLibraryError(c, err, "set library root")
		return
	}

	respondAccepted(c, "library root updated", ScanResponse{
		Root:      run.Root,
		StartedAt: &run.StartedAt,
		Started:   started,
	})
}

// Scan handles POST /api/library/scan
func (lc *LibraryController) Scan(c *gin.Context) {
	root := lc.library.Root()

	if lc.queue != nil {
		taskID, err := lc.queue.EnqueueScan(root)
		if err != nil {
			respondInternalError(c, err, "enqueue scan")
			return
		}
		respondAccepted(c, "scan queued", ScanResponse{Root: root, TaskID: taskID})
		return
	}

	run, started := lc.library.StartScan()
	message := "scan started"
	if !started {
		message = "scan already running"
	}
	respondAccepted(c, message, ScanResponse{
		Root:      run.Root,
		StartedAt: &run.StartedAt,
		Started:   started,
	})
}

// ScanStatus handles GET /api/library/scan/status
func (lc *LibraryController) ScanStatus(c *gin.Context) {
	status, err := lc.library.ScanStatus()
	if err != nil {
		respondLibraryError(c, err, "scan status")
		return
	}
	c.JSON(http.StatusOK, status)
}
