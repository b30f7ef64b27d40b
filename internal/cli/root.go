// Package cli holds the mangashelf command tree.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mangashelf/mangashelf/internal/config"
	"github.com/mangashelf/mangashelf/internal/entrypoint"
)

// Overrides are the flags shared by commands that open the catalog.
type Overrides struct {
	DatabasePath string
	Root         string
}

func (o *Overrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.DatabasePath, "db", "", "catalog database path (default $DATABASE_PATH or "+config.DefaultDatabasePath+")")
	cmd.Flags().StringVar(&o.Root, "root", "", "library root directory (default $LIBRARY_ROOT or "+config.DefaultLibraryRoot+")")
}

func (o *Overrides) apply(cfg *config.Config) {
	if o.DatabasePath != "" {
		cfg.Database.Path = o.DatabasePath
	}
	if o.Root != "" {
		cfg.Library.Root = o.Root
	}
}

// NewRootCommand builds the command tree. Running without a subcommand
// starts the server.
func NewRootCommand(version string) *cobra.Command {
	serve := newServeCommand(version)

	root := &cobra.Command{
		Use:          "mangashelf",
		Short:        "A personal manga library",
		Long:         "Catalog folders of .cbz/.zip chapters and read them through a local JSON API",
		Version:      version,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve)
	root.AddCommand(newScanCommand())
	root.AddCommand(newListCommand())
	return root
}

// Execute runs the command tree; an interrupt cancels the command context.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand(version).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func openApp(overrides Overrides) (*entrypoint.App, error) {
	cfg := config.NewConfig()
	overrides.apply(cfg)
	return entrypoint.NewApp(cfg)
}
