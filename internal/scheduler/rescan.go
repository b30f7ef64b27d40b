package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// ScanTrigger starts a background scan of the active library root.
type ScanTrigger interface {
	TriggerScan() error
}

// ScanTriggerFunc adapts a function to ScanTrigger.
type ScanTriggerFunc func() error

func (f ScanTriggerFunc) TriggerScan() error {
	return f()
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule validates a five-field cron schedule string.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule.
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// RescanScheduler periodically rescans the library so files copied into the
// root show up without a manual scan.
type RescanScheduler struct {
	trigger  ScanTrigger
	schedule string

	cron     *cron.Cron
	entryID  cron.EntryID
	mu       sync.RWMutex
	running  bool
	triggers atomic.Int64
}

// NewRescanScheduler creates a scheduler for schedule.
func NewRescanScheduler(trigger ScanTrigger, schedule string) *RescanScheduler {
	return &RescanScheduler{
		trigger:  trigger,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the rescan job and starts the cron loop. The scheduler
// stops when ctx is done.
func (s *RescanScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule rescan job: %w", err)
	}
	s.entryID = entryID
	s.cron.Start()
	s.running = true

	log.Printf("[SCHEDULER] Rescan started with schedule '%s' (%s). Next run: %v",
		s.schedule, GetCronDescription(s.schedule), s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop stops the cron loop and waits for a running job to return.
func (s *RescanScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.running = false
	log.Printf("[SCHEDULER] Rescan stopped")
}

// RunNow triggers a rescan immediately.
func (s *RescanScheduler) RunNow() {
	s.triggers.Add(1)
	if err := s.trigger.TriggerScan(); err != nil {
		log.Printf("[SCHEDULER] Rescan trigger failed: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Rescan triggered")
}

// IsRunning returns whether the scheduler is active.
func (s *RescanScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Triggers counts how many rescans have been triggered.
func (s *RescanScheduler) Triggers() int64 {
	return s.triggers.Load()
}

// GetNextRunTime returns when the next rescan will occur, or nil when stopped.
func (s *RescanScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}
