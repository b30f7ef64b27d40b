package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCommand() *cobra.Command {
	var overrides Overrides
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a library root into the catalog",
		Long: `Walk the library root once and add new titles and chapters to the catalog.
Titles and chapters already cataloged are left untouched.`,
		Example: "  mangashelf scan --root ~/Manga",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(overrides)
			if err != nil {
				return err
			}
			defer app.Close()

			if !quiet {
				app.Scanner.SetProgressReporter(newBarReporter(cmd.ErrOrStderr(), app.Progress))
			}

			result, err := app.Scans.ScanAndWait(cmd.Context(), app.Library.Root())
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			out := cmd.OutOrStdout()
			printScanResult(out, result)

			stats, err := app.DB.Stats()
			if err != nil {
				return err
			}
			printStats(out, stats)
			return nil
		},
	}
	overrides.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not draw a progress bar")
	return cmd
}
