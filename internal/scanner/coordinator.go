package scanner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Runner performs one scan. *Scanner satisfies it.
type Runner interface {
	Scan(ctx context.Context, root string) (*Result, error)
}

// Run is a single in-flight or finished scan. Its outcome is assigned once
// and shared by every caller that waits on it.
type Run struct {
	Root      string
	StartedAt time.Time

	done   chan struct{}
	result *Result
	err    error
}

// Done is closed when the scan has finished.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the scan finishes or ctx is done. Giving up does not
// stop the scan.
func (r *Run) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Coordinator allows at most one scan at a time for the whole process.
type Coordinator struct {
	runner Runner

	mu      sync.Mutex
	current *Run
	last    *Run
}

// NewCoordinator creates a Coordinator around runner.
func NewCoordinator(runner Runner) *Coordinator {
	return &Coordinator{runner: runner}
}

// Begin starts a scan of root in the background, or returns the scan that
// is already running, whatever its root. started reports which happened.
func (c *Coordinator) Begin(root string) (run *Run, started bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return c.current, false
	}

	run = &Run{
		Root:      root,
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
	c.current = run
	go c.execute(run)
	return run, true
}

// BeginFor returns a run scanning root. A running scan of another root is
// waited out first; a running scan of root itself is joined, in which case
// started is false.
func (c *Coordinator) BeginFor(ctx context.Context, root string) (run *Run, started bool, err error) {
	for {
		run, started = c.Begin(root)
		if started || run.Root == root {
			return run, started, nil
		}
		select {
		case <-run.done:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
}

// ScanAndWait scans root, joining a running scan of the same root, and
// waits for the outcome.
func (c *Coordinator) ScanAndWait(ctx context.Context, root string) (*Result, error) {
	run, _, err := c.BeginFor(ctx, root)
	if err != nil {
		return nil, err
	}
	return run.Wait(ctx)
}

func (c *Coordinator) execute(run *Run) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[SCAN] Scan of %s panicked: %v", run.Root, p)
			run.result, run.err = nil, fmt.Errorf("scan panicked: %v", p)
		}
		c.mu.Lock()
		c.current = nil
		c.last = run
		c.mu.Unlock()
		close(run.done)
	}()

	// Callers may abandon their wait; the scan itself runs to completion.
	run.result, run.err = c.runner.Scan(context.Background(), run.Root)
	if run.err != nil {
		log.Printf("[SCAN] Scan of %s failed: %v", run.Root, run.err)
	}
}

// Current returns the running scan, or nil.
func (c *Coordinator) Current() *Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Last returns the most recently finished scan, or nil.
func (c *Coordinator) Last() *Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Wait blocks until no scan is running. It returns immediately when idle.
func (c *Coordinator) Wait(ctx context.Context) error {
	run := c.Current()
	if run == nil {
		return nil
	}
	select {
	case <-run.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
