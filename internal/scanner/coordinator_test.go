package scanner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingRunner holds every scan until release is closed.
type blockingRunner struct {
	release chan struct{}
	calls   atomic.Int32
	err     error
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{release: make(chan struct{})}
}

func (r *blockingRunner) Scan(ctx context.Context, root string) (*Result, error) {
	n := r.calls.Add(1)
	<-r.release
	return &Result{Root: root, TitlesSeen: int(n)}, r.err
}

func TestCoordinator_SharesInFlightRun(t *testing.T) {
	runner := newBlockingRunner()
	c := NewCoordinator(runner)

	first, started := c.Begin("/a")
	require.True(t, started)
	second, started := c.Begin("/a")
	assert.False(t, started)
	assert.Same(t, first, second)

	other, started := c.Begin("/b")
	assert.False(t, started)
	assert.Same(t, first, other)

	var wg sync.WaitGroup
	results := make([]*Result, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := first.Wait(context.Background())
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	close(runner.release)
	wg.Wait()

	assert.Equal(t, int32(1), runner.calls.Load())
	for _, res := range results {
		assert.Same(t, results[0], res)
	}
	assert.Equal(t, "/a", results[0].Root)
}

func TestCoordinator_StartsNewRunAfterCompletion(t *testing.T) {
	runner := newBlockingRunner()
	close(runner.release)
	c := NewCoordinator(runner)

	first, _ := c.Begin("/a")
	_, err := first.Wait(context.Background())
	require.NoError(t, err)
	assert.Nil(t, c.Current())
	assert.Same(t, first, c.Last())

	second, started := c.Begin("/b")
	assert.True(t, started)
	assert.NotSame(t, first, second)

	res, err := second.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/b", res.Root)
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestCoordinator_WaitAbandonDoesNotCancelScan(t *testing.T) {
	runner := newBlockingRunner()
	c := NewCoordinator(runner)
	run, _ := c.Begin("/a")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := run.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, c.Wait(ctx), context.DeadlineExceeded)

	assert.Same(t, run, c.Current())
	close(runner.release)

	select {
	case <-run.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("scan did not finish")
	}
	assert.NoError(t, c.Wait(context.Background()))
}

func TestCoordinator_PropagatesScanError(t *testing.T) {
	runner := newBlockingRunner()
	runner.err = errors.New("catalog unavailable")
	close(runner.release)
	c := NewCoordinator(runner)

	run, _ := c.Begin("/a")
	_, err := run.Wait(context.Background())
	assert.EqualError(t, err, "catalog unavailable")
}

func TestCoordinator_WaitWhenIdle(t *testing.T) {
	c := NewCoordinator(newBlockingRunner())
	assert.NoError(t, c.Wait(context.Background()))
}

func TestCoordinator_BeginForWaitsOutOtherRoot(t *testing.T) {
	runner := newBlockingRunner()
	c := NewCoordinator(runner)
	first, _ := c.Begin("/a")

	got := make(chan *Run, 1)
	go func() {
		run, started, err := c.BeginFor(context.Background(), "/b")
		assert.NoError(t, err)
		assert.True(t, started)
		got <- run
	}()

	select {
	case <-got:
		t.Fatal("BeginFor returned while another root was scanning")
	case <-time.After(30 * time.Millisecond):
	}

	close(runner.release)
	select {
	case run := <-got:
		assert.NotSame(t, first, run)
		assert.Equal(t, "/b", run.Root)
	case <-time.After(2 * time.Second):
		t.Fatal("BeginFor never returned")
	}
}

func TestCoordinator_BeginForJoinsSameRoot(t *testing.T) {
	runner := newBlockingRunner()
	c := NewCoordinator(runner)
	first, _ := c.Begin("/a")

	joined, started, err := c.BeginFor(context.Background(), "/a")
	require.NoError(t, err)
	assert.False(t, started)
	assert.Same(t, first, joined)

	close(runner.release)
	res, err := c.ScanAndWait(context.Background(), "/c")
	require.NoError(t, err)
	assert.Equal(t, "/c", res.Root)
	assert.Equal(t, int32(2), runner.calls.Load())
}
