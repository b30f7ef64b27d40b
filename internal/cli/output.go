package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/mangashelf/mangashelf/internal/entities"
	"github.com/mangashelf/mangashelf/internal/scanner"
)

var (
	headingColor = color.New(color.FgHiCyan)
	warnColor    = color.New(color.FgYellow)
	favColor     = color.New(color.FgHiMagenta)
)

func pluralize(s string, count int64) string {
	if count == 1 {
		return "1 " + s
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(count), s)
}

func printHeading(w io.Writer, title string) {
	headingColor.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

func printScanResult(w io.Writer, result *scanner.Result) {
	printHeading(w, "Scan of "+result.Root)
	fmt.Fprintf(w, "Titles:   %s seen, %s new\n",
		humanize.Comma(int64(result.TitlesSeen)), humanize.Comma(int64(result.TitlesCreated)))
	fmt.Fprintf(w, "Chapters: %s new, %s already cataloged\n",
		humanize.Comma(int64(result.ChaptersCreated)), humanize.Comma(int64(result.ChaptersSkipped)))
	if result.ChaptersUnreadable > 0 {
		warnColor.Fprintf(w, "Cataloged %s with no readable pages\n", pluralize("chapter", int64(result.ChaptersUnreadable)))
	}
	if failed := result.TitlesFailed + result.ChaptersFailed; failed > 0 {
		warnColor.Fprintf(w, "%s failed:\n", pluralize("item", int64(failed)))
		for _, msg := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
	fmt.Fprintf(w, "Finished in %s\n", result.Duration.Round(time.Millisecond))
}

func printStats(w io.Writer, stats entities.CatalogStats) {
	fmt.Fprintln(w)
	printHeading(w, "Catalog")
	fmt.Fprintf(w, "%s, %s, %s, %s\n",
		pluralize("base folder", stats.BaseFolders),
		pluralize("title", stats.Titles),
		pluralize("genre", stats.Genres),
		pluralize("chapter", stats.Chapters))
}

func printTitles(w io.Writer, root string, titles []entities.TitleSummary) {
	printHeading(w, fmt.Sprintf("%s in %s", pluralize("title", int64(len(titles))), root))
	for _, title := range titles {
		marker := " "
		if title.Favorited {
			marker = favColor.Sprint("*")
		}
		fmt.Fprintf(w, "%s %-40s %-24s %s  [%s]\n",
			marker,
			title.Name,
			title.Artist,
			pluralize("chapter", title.ChapterCount),
			strings.Join(title.Genres, ", "))
	}
}
