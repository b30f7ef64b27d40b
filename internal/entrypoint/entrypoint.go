package entrypoint

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mangashelf/mangashelf/internal/config"
	"github.com/mangashelf/mangashelf/internal/covers"
	http_controllers "github.com/mangashelf/mangashelf/internal/http"
	"github.com/mangashelf/mangashelf/internal/scheduler"
	"github.com/mangashelf/mangashelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    cfg.HTTP.Address(),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s", cfg.HTTP.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting MangaShelf v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	log.Printf("Library root: %s", app.Library.Root())
	log.Printf("Cover URLs prefixed with %s", cfg.Library.StaticBaseURL)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewScanLibraryQueue(app.Scans, app.Library.Root))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	trigger := scanTrigger(app, taskClient)

	if cfg.Library.ScanOnStartup {
		startupScan(app)
	}

	var rescan *scheduler.RescanScheduler
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if cfg.Rescan.Enabled {
		rescan = scheduler.NewRescanScheduler(trigger, cfg.Rescan.Schedule)
		if err := rescan.Start(schedulerCtx); err != nil {
			log.Printf("WARNING: Rescan scheduler disabled: %v", err)
		}
		app.Library.SetRescanSchedule(rescan)
	}

	routerCfg := http_controllers.RouterConfig{
		Library:    app.Library,
		Database:   app.DB,
		CoverMount: covers.NewMount(app.Library.Root),
		StaticPath: config.StaticMountPath,
		Version:    version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if rescan != nil && rescan.IsRunning() {
			rescan.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if err := app.Library.WaitForScan(ctx); err != nil {
			log.Printf("[SCAN] Shutting down with a scan still running")
		}
	}

	Serve(router, cfg, onShutdown)
}

// startupScan runs on the in-process coordinator even when the task queue is
// enabled, so queries issued right after startup wait for it to finish.
func startupScan(app *App) {
	run, started := app.Library.StartScan()
	if started {
		log.Printf("[SCAN] Started startup scan of %s", run.Root)
	}
}

// scanTrigger queues scans when the task queue is running and falls back to
// the in-process coordinator otherwise.
func scanTrigger(app *App, taskClient *tasks.Client) scheduler.ScanTrigger {
	return scheduler.ScanTriggerFunc(func() error {
		root := app.Library.Root()
		if taskClient != nil {
			taskID, err := taskClient.EnqueueScan(root)
			if err != nil {
				return err
			}
			log.Printf("[SCAN] Queued scan of %s (task %s)", root, taskID)
			return nil
		}

		run, started := app.Library.StartScan()
		if started {
			log.Printf("[SCAN] Started scan of %s", run.Root)
		}
		return nil
	})
}
