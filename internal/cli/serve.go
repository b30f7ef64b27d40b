package cli

import (
	"github.com/spf13/cobra"

	"github.com/mangashelf/mangashelf/internal/config"
	"github.com/mangashelf/mangashelf/internal/entrypoint"
)

func newServeCommand(version string) *cobra.Command {
	var overrides Overrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Start the JSON API, scan the library root and run the background task queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			overrides.apply(cfg)
			entrypoint.Run(cfg, version)
			return nil
		},
	}
	overrides.register(cmd)
	return cmd
}
