// Package scanner reconciles a library root on disk into the catalog.
//
// A scan is one linear pass over the immediate subdirectories of the root.
// Every write is insert-if-absent, so an interrupted scan leaves a catalog
// that the next scan completes without duplicating rows.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mangashelf/mangashelf/internal/archive"
	"github.com/mangashelf/mangashelf/internal/covers"
	"github.com/mangashelf/mangashelf/internal/entities"
)

// Catalog is the write side of the catalog store used during a scan.
type Catalog interface {
	EnsureBaseFolder(path string) (*entities.BaseFolder, bool, error)
	TouchBaseFolder(id uint, at time.Time) error
	FindOrCreateTitle(candidate *entities.Title) (*entities.Title, bool, error)
	FindOrCreateGenre(name string) (*entities.Genre, error)
	LinkGenre(titleID, genreID uint) error
	ChapterExists(filePath string) (bool, error)
	NextSequenceIndex(titleID uint) (int, error)
	CreateChapter(chapter *entities.Chapter) error
}

// PageCounter counts the image pages of a chapter archive.
type PageCounter interface {
	CountImagePages(archivePath string) (int, error)
}

// ProgressReporter receives per-title progress. Implemented by the sync
// repository and by the CLI progress bar.
type ProgressReporter interface {
	StartSync(totalItems int) error
	UpdateProgress(processed, succeeded, failed, skipped int, currentItem string) error
	CompleteSync(succeeded bool, errorMsg string) error
}

// Result summarizes one scan.
type Result struct {
	Root               string        `json:"root"`
	BaseFolderID       uint          `json:"base_folder_id"`
	TitlesSeen         int           `json:"titles_seen"`
	TitlesCreated      int           `json:"titles_created"`
	TitlesFailed       int           `json:"titles_failed"`
	ChaptersCreated    int           `json:"chapters_created"`
	ChaptersSkipped    int           `json:"chapters_skipped"`
	ChaptersUnreadable int           `json:"chapters_unreadable"`
	ChaptersFailed     int           `json:"chapters_failed"`
	Duration           time.Duration `json:"duration"`
	Errors             []string      `json:"errors,omitempty"`
}

// Scanner walks one root directory per Scan call.
type Scanner struct {
	catalog          Catalog
	pages            PageCounter
	staticBaseURL    string
	progressReporter ProgressReporter
}

// New creates a Scanner. staticBaseURL prefixes the cover URLs written into
// new titles.
func New(catalog Catalog, pages PageCounter, staticBaseURL string) *Scanner {
	return &Scanner{
		catalog:       catalog,
		pages:         pages,
		staticBaseURL: staticBaseURL,
	}
}

// SetProgressReporter sets the progress reporter (optional).
func (s *Scanner) SetProgressReporter(reporter ProgressReporter) {
	s.progressReporter = reporter
}

// Scan reconciles root into the catalog. Only failures before any title is
// processed are returned; per-title and per-chapter failures are logged and
// counted in the Result.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	started := time.Now()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", absRoot)
	}

	folder, created, err := s.catalog.EnsureBaseFolder(absRoot)
	if err != nil {
		return nil, fmt.Errorf("ensure base folder: %w", err)
	}
	if created {
		log.Printf("[SCAN] Registered base folder %s", absRoot)
	}

	candidates, err := titleDirectories(absRoot)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	result := &Result{
		Root:         absRoot,
		BaseFolderID: folder.ID,
		TitlesSeen:   len(candidates),
	}
	log.Printf("[SCAN] Scanning %s: %d title directories", absRoot, len(candidates))

	if s.progressReporter != nil {
		if err := s.progressReporter.StartSync(len(candidates)); err != nil {
			log.Printf("[SCAN] Failed to start progress tracking: %v", err)
		}
	}

	processed, succeeded := 0, 0
	for _, name := range candidates {
		select {
		case <-ctx.Done():
			result.Errors = append(result.Errors, "scan cancelled")
			result.Duration = time.Since(started)
			if s.progressReporter != nil {
				_ = s.progressReporter.CompleteSync(false, "scan cancelled")
			}
			return result, ctx.Err()
		default:
		}

		if s.progressReporter != nil {
			_ = s.progressReporter.UpdateProgress(processed, succeeded, result.TitlesFailed, 0, name)
		}

		if err := s.scanTitle(folder, absRoot, filepath.Join(absRoot, name), result); err != nil {
			log.Printf("[SCAN] Title %q failed: %v", name, err)
			result.TitlesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
		} else {
			succeeded++
		}
		processed++
	}

	if err := s.catalog.TouchBaseFolder(folder.ID, time.Now()); err != nil {
		log.Printf("[SCAN] Failed to update last scan time of %s: %v", absRoot, err)
	}

	result.Duration = time.Since(started)
	if s.progressReporter != nil {
		_ = s.progressReporter.UpdateProgress(processed, succeeded, result.TitlesFailed, 0, "")
		_ = s.progressReporter.CompleteSync(true, "")
	}

	log.Printf("[SCAN] Finished %s in %s: %d new titles, %d new chapters, %d failed titles",
		absRoot, result.Duration.Round(time.Millisecond), result.TitlesCreated, result.ChaptersCreated, result.TitlesFailed)

	return result, nil
}

func (s *Scanner) scanTitle(folder *entities.BaseFolder, root, dir string, result *Result) error {
	meta, err := LoadMetadata(dir)
	if err != nil {
		log.Printf("[SCAN] Using directory name for %s: %v", dir, err)
	}

	coverURL := ""
	coverPath, err := FindCover(dir)
	if err != nil {
		log.Printf("[SCAN] Cover lookup failed for %s: %v", dir, err)
	} else if coverPath != "" {
		if coverURL, err = covers.BuildURL(s.staticBaseURL, root, coverPath); err != nil {
			log.Printf("[SCAN] Cover URL failed for %s: %v", coverPath, err)
			coverURL = ""
		}
	}

	title, created, err := s.catalog.FindOrCreateTitle(&entities.Title{
		BaseFolderID: folder.ID,
		Name:         meta.Name,
		CoverURL:     coverURL,
		Summary:      meta.Summary,
		Artist:       meta.Artist,
		Writer:       meta.Writer,
		Favorited:    false,
		ModifiedAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("upsert title: %w", err)
	}
	if created {
		result.TitlesCreated++
	}

	for _, name := range meta.Genres {
		genre, err := s.catalog.FindOrCreateGenre(name)
		if err != nil {
			return fmt.Errorf("upsert genre %q: %w", name, err)
		}
		if err := s.catalog.LinkGenre(title.ID, genre.ID); err != nil {
			return fmt.Errorf("link genre %q: %w", name, err)
		}
	}

	files, err := chapterFiles(dir)
	if err != nil {
		return fmt.Errorf("list chapters: %w", err)
	}
	for _, file := range files {
		if err := s.scanChapter(title, file, result); err != nil {
			log.Printf("[SCAN] Chapter %s failed: %v", file, err)
			result.ChaptersFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file, err))
		}
	}
	return nil
}

func (s *Scanner) scanChapter(title *entities.Title, file string, result *Result) error {
	exists, err := s.catalog.ChapterExists(file)
	if err != nil {
		return err
	}
	if exists {
		result.ChaptersSkipped++
		return nil
	}

	info, err := os.Stat(file)
	if err != nil {
		return err
	}

	pageCount, err := s.pages.CountImagePages(file)
	if err != nil {
		if !errors.Is(err, archive.ErrArchiveUnreadable) {
			return err
		}
		log.Printf("[SCAN] %v; cataloging with 0 pages", err)
		result.ChaptersUnreadable++
		pageCount = 0
	}

	index, err := s.catalog.NextSequenceIndex(title.ID)
	if err != nil {
		return err
	}

	base := filepath.Base(file)
	err = s.catalog.CreateChapter(&entities.Chapter{
		TitleID:       title.ID,
		Name:          strings.TrimSuffix(base, filepath.Ext(base)),
		DateAdded:     info.ModTime(),
		FilePath:      file,
		SequenceIndex: index,
		PageCount:     pageCount,
	})
	if err != nil {
		return err
	}
	result.ChaptersCreated++
	return nil
}

// titleDirectories lists the immediate subdirectories of root in natural
// order. Hidden directories are skipped.
func titleDirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	archive.SortNatural(names)
	return names, nil
}

// chapterFiles lists the archives directly inside dir in natural order.
func chapterFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && archive.IsArchiveName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	archive.SortNatural(names)

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files, nil
}
