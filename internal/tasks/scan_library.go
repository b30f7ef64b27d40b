package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mangashelf/mangashelf/internal/scanner"
)

// ScanRunner runs a scan of root, joining one already in flight.
type ScanRunner interface {
	ScanAndWait(ctx context.Context, root string) (*scanner.Result, error)
}

// ScanLibraryTask scans a library root in the background.
type ScanLibraryTask struct {
	// Root is the directory to scan. Empty selects the active root.
	Root string `json:"root,omitempty"`
}

// Config returns the queue configuration for library scans.
func (t ScanLibraryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "scan_library",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ScanLibraryProcessor creates a processor for ScanLibraryTask. activeRoot
// supplies the root for tasks that do not name one.
func ScanLibraryProcessor(runner ScanRunner, activeRoot func() string) backlite.QueueProcessor[ScanLibraryTask] {
	return func(ctx context.Context, task ScanLibraryTask) error {
		if runner == nil {
			return fmt.Errorf("scanner not configured")
		}

		root := task.Root
		if root == "" && activeRoot != nil {
			root = activeRoot()
		}
		if root == "" {
			return fmt.Errorf("no library root to scan")
		}

		result, err := runner.ScanAndWait(ctx, root)
		if err != nil {
			return fmt.Errorf("scan library %s: %w", root, err)
		}

		log.Printf("[TASK] Scan of %s complete: %d titles, %d new titles, %d new chapters, %d failed titles",
			result.Root, result.TitlesSeen, result.TitlesCreated, result.ChaptersCreated, result.TitlesFailed)
		return nil
	}
}

// NewScanLibraryQueue creates a backlite queue for library scans.
func NewScanLibraryQueue(runner ScanRunner, activeRoot func() string) backlite.Queue {
	return backlite.NewQueue(ScanLibraryProcessor(runner, activeRoot))
}

// EnqueueScan adds a scan task and returns its id.
func (c *Client) EnqueueScan(root string) (string, error) {
	ids, err := c.Add(ScanLibraryTask{Root: root}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue scan: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue scan: no task id returned")
	}
	return ids[0], nil
}
