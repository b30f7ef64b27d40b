package entrypoint

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangashelf/mangashelf/internal/config"
	"github.com/mangashelf/mangashelf/internal/entities"
	"github.com/mangashelf/mangashelf/internal/tasks"
)

func newTestApp(t *testing.T, root string) *App {
	t.Helper()
	cfg := &config.Config{
		Database: config.Database{
			Path:     filepath.Join(t.TempDir(), "mangashelf.db"),
			LogLevel: "silent",
		},
		Library: config.Library{
			Root:          root,
			StaticBaseURL: "http://localhost:3001/manga",
			ScanOnStartup: true,
		},
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = app.Library.WaitForScan(context.Background())
		app.Close()
	})
	return app
}

// startTaskClient runs a queue with the scan task registered, as Run does.
func startTaskClient(t *testing.T, app *App) *tasks.Client {
	t.Helper()
	client, err := tasks.NewClient(app.Config.Database.Path, tasks.DefaultConfig())
	require.NoError(t, err)
	client.Register(tasks.NewScanLibraryQueue(app.Scans, app.Library.Root))

	ctx, cancel := context.WithCancel(context.Background())
	go client.Start(ctx)

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		client.Stop(stopCtx)
		cancel()
		client.Close()
	})
	return client
}

func writeChapter(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("1.png")
	require.NoError(t, err)
	_, err = w.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestStartupScan_QueriesSeeScannedTitles(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, filepath.Join(root, "Vagabond", "Vol 1.cbz"))
	app := newTestApp(t, root)
	startTaskClient(t, app)

	startupScan(app)

	list, err := app.Library.ListTitles(context.Background(), entities.TitleFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Vagabond", list[0].Name)
	assert.Equal(t, int64(1), list[0].ChapterCount)
}

func TestScanTrigger_QueuesWhenTaskClientRunning(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, filepath.Join(root, "Vagabond", "Vol 1.cbz"))
	app := newTestApp(t, root)
	client := startTaskClient(t, app)

	require.NoError(t, scanTrigger(app, client).TriggerScan())

	assert.Eventually(t, func() bool {
		last := app.Scans.Last()
		return last != nil && last.Root == app.Library.Root()
	}, 10*time.Second, 20*time.Millisecond)
}

func TestScanTrigger_InProcessWithoutQueue(t *testing.T) {
	root := t.TempDir()
	writeChapter(t, filepath.Join(root, "Vagabond", "Vol 1.cbz"))
	app := newTestApp(t, root)

	require.NoError(t, scanTrigger(app, nil).TriggerScan())

	list, err := app.Library.ListTitles(context.Background(), entities.TitleFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
