package cli

import (
	"github.com/spf13/cobra"

	"github.com/mangashelf/mangashelf/internal/entities"
)

func newListCommand() *cobra.Command {
	var overrides Overrides
	var filter entities.TitleFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the titles of a library root",
		Long:  "Print the cataloged titles of the library root. Run scan first to pick up new folders.",
		Example: `  mangashelf list --root ~/Manga
  mangashelf list --root ~/Manga --genre Action --genre Comedy
  mangashelf list --favorites`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(overrides)
			if err != nil {
				return err
			}
			defer app.Close()

			titles, err := app.Library.ListTitles(cmd.Context(), filter)
			if err != nil {
				return err
			}
			printTitles(cmd.OutOrStdout(), app.Library.Root(), titles)
			return nil
		},
	}
	overrides.register(cmd)
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "match name, artist or writer")
	cmd.Flags().StringSliceVarP(&filter.Genres, "genre", "g", nil, "only titles carrying this genre (repeatable)")
	cmd.Flags().BoolVar(&filter.FavoritesOnly, "favorites", false, "only favorited titles")
	return cmd
}
