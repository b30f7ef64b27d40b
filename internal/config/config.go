package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Library
		Archive
		Rescan
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Library struct {
		Root          string
		StaticBaseURL string // Prefix written into cover URLs
		ScanOnStartup bool
	}
	Archive struct {
		MaxEntryBytes int64 // Decompressed size limit for a single page
	}
	Rescan struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3001)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("library_root", DefaultLibraryRoot)
	v.SetDefault("library_static_base_url", "")
	v.SetDefault("library_scan_on_startup", true)
	v.SetDefault("archive_max_entry_bytes", 256<<20)

	v.SetDefault("rescan_enabled", false)
	v.SetDefault("rescan_schedule", "0 * * * *") // Hourly at :00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	cfg := &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Library: Library{
			Root:          v.GetString("LIBRARY_ROOT"),
			StaticBaseURL: v.GetString("LIBRARY_STATIC_BASE_URL"),
			ScanOnStartup: v.GetBool("LIBRARY_SCAN_ON_STARTUP"),
		},
		Archive: Archive{
			MaxEntryBytes: v.GetInt64("ARCHIVE_MAX_ENTRY_BYTES"),
		},
		Rescan: Rescan{
			Enabled:  v.GetBool("RESCAN_ENABLED"),
			Schedule: v.GetString("RESCAN_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}

	if cfg.Library.StaticBaseURL == "" {
		cfg.Library.StaticBaseURL = fmt.Sprintf("http://localhost:%d%s", cfg.HTTP.Port, StaticMountPath)
	}
	return cfg
}

// Address is the HTTP listen address.
func (h HTTP) Address() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
