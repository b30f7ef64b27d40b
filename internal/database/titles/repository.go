// Package titles provides the read side of the catalog: title listings,
// genre listings, title detail and chapter navigation.
//
// # Usage
//
//	repo := titles.NewRepository(db)
//	list, err := repo.ListTitles(folderID, entities.TitleFilter{Genres: []string{"Action"}})
//	detail, err := repo.GetChapterDetail(titleID, 3)
package titles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/mangashelf/mangashelf/internal/database"
	"github.com/mangashelf/mangashelf/internal/entities"
)

// Repository handles catalog queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new titles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type titleGenreRow struct {
	TitleID uint
	Name    string
}

type chapterCountRow struct {
	TitleID uint
	Total   int64
}

// ListTitles returns the titles of one base folder ordered by name, each
// with its genres and chapter count.
func (r *Repository) ListTitles(baseFolderID uint, filter entities.TitleFilter) ([]entities.TitleSummary, error) {
	query := r.db.Model(&entities.Title{}).Where("base_folder_id = ?", baseFolderID)

	if filter.FavoritesOnly {
		query = query.Where("favorited = ?", true)
	}
	if text := strings.TrimSpace(filter.Query); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(artist) LIKE ? OR LOWER(writer) LIKE ?",
			pattern, pattern, pattern)
	}
	for _, genre := range filter.Genres {
		genre = strings.TrimSpace(genre)
		if genre == "" {
			continue
		}
		query = query.Where(`id IN (
			SELECT title_genres.title_id FROM title_genres
			JOIN genres ON genres.id = title_genres.genre_id
			WHERE LOWER(genres.name) = LOWER(?))`, genre)
	}

	var rows []entities.Title
	if err := query.Order("LOWER(name) ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	if len(rows) == 0 {
		return []entities.TitleSummary{}, nil
	}

	genresByTitle, err := r.genresForFolder(baseFolderID)
	if err != nil {
		return nil, err
	}

	var counts []chapterCountRow
	err = r.db.Model(&entities.Chapter{}).
		Select("chapters.title_id, COUNT(*) AS total").
		Joins("JOIN titles ON titles.id = chapters.title_id").
		Where("titles.base_folder_id = ?", baseFolderID).
		Group("chapters.title_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count chapters: %w", err)
	}
	countByTitle := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countByTitle[c.TitleID] = c.Total
	}

	summaries := make([]entities.TitleSummary, 0, len(rows))
	for _, t := range rows {
		summaries = append(summaries, entities.TitleSummary{
			ID:           t.ID,
			Name:         t.Name,
			Favorited:    t.Favorited,
			CoverURL:     t.CoverURL,
			Artist:       t.Artist,
			Writer:       t.Writer,
			Genres:       genresOrUnknown(genresByTitle[t.ID]),
			ChapterCount: countByTitle[t.ID],
		})
	}
	return summaries, nil
}

// ListGenres returns the distinct genres used by titles of a base folder,
// sorted case-insensitively.
func (r *Repository) ListGenres(baseFolderID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&entities.Genre{}).
		Distinct("genres.name").
		Joins("JOIN title_genres ON title_genres.genre_id = genres.id").
		Joins("JOIN titles ON titles.id = title_genres.title_id").
		Where("titles.base_folder_id = ?", baseFolderID).
		Pluck("genres.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	sortGenres(names)
	return names, nil
}

// GetTitleDetail returns a title with its genres and ordered chapters.
func (r *Repository) GetTitleDetail(titleID uint) (*entities.TitleDetail, error) {
	title, err := r.findTitle(titleID)
	if err != nil {
		return nil, err
	}

	genres, err := r.genresForTitle(titleID)
	if err != nil {
		return nil, err
	}
	chapters, err := r.chapterRefs(titleID)
	if err != nil {
		return nil, err
	}

	return &entities.TitleDetail{
		ID:        title.ID,
		Name:      title.Name,
		CoverURL:  title.CoverURL,
		Summary:   title.Summary,
		Artist:    title.Artist,
		Writer:    title.Writer,
		Favorited: title.Favorited,
		Genres:    genresOrUnknown(genres),
		Chapters:  chapters,
	}, nil
}

// GetChapterDetail returns the chapter at sequenceIndex of a title with its
// navigation flags. The flags compare against the chapter count, so a gap in
// the indices can report a neighbour that does not exist.
func (r *Repository) GetChapterDetail(titleID uint, sequenceIndex int) (*entities.ChapterDetail, error) {
	var chapter entities.Chapter
	err := r.db.Where("title_id = ? AND sequence_index = ?", titleID, sequenceIndex).First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrChapterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	title, err := r.findTitle(titleID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := r.db.Model(&entities.Chapter{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count chapters: %w", err)
	}

	chapters, err := r.chapterRefs(titleID)
	if err != nil {
		return nil, err
	}

	return &entities.ChapterDetail{
		Index:         chapter.SequenceIndex,
		Name:          chapter.Name,
		Path:          chapter.FilePath,
		PageCount:     chapter.PageCount,
		TitleID:       title.ID,
		TitleName:     title.Name,
		TotalChapters: total,
		HasNext:       int64(sequenceIndex) < total,
		HasPrevious:   sequenceIndex > 1,
		Chapters:      chapters,
	}, nil
}

// GetChapterByPath looks a chapter up by its archive path.
func (r *Repository) GetChapterByPath(filePath string) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.Where("file_path = ?", filePath).First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrChapterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *Repository) findTitle(titleID uint) (*entities.Title, error) {
	var title entities.Title
	err := r.db.First(&title, titleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrTitleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get title: %w", err)
	}
	return &title, nil
}

func (r *Repository) genresForFolder(baseFolderID uint) (map[uint][]string, error) {
	var rows []titleGenreRow
	err := r.db.Table("title_genres").
		Select("title_genres.title_id, genres.name").
		Joins("JOIN genres ON genres.id = title_genres.genre_id").
		Joins("JOIN titles ON titles.id = title_genres.title_id").
		Where("titles.base_folder_id = ?", baseFolderID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	byTitle := make(map[uint][]string)
	for _, row := range rows {
		byTitle[row.TitleID] = append(byTitle[row.TitleID], row.Name)
	}
	for id := range byTitle {
		sortGenres(byTitle[id])
	}
	return byTitle, nil
}

func (r *Repository) genresForTitle(titleID uint) ([]string, error) {
	var names []string
	err := r.db.Table("title_genres").
		Joins("JOIN genres ON genres.id = title_genres.genre_id").
		Where("title_genres.title_id = ?", titleID).
		Pluck("genres.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	sortGenres(names)
	return names, nil
}

func (r *Repository) chapterRefs(titleID uint) ([]entities.ChapterRef, error) {
	var chapters []entities.Chapter
	err := r.db.Where("title_id = ?", titleID).Order("sequence_index ASC").Find(&chapters).Error
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	refs := make([]entities.ChapterRef, 0, len(chapters))
	for _, c := range chapters {
		refs = append(refs, entities.ChapterRef{
			Index:     c.SequenceIndex,
			Name:      c.Name,
			Path:      c.FilePath,
			PageCount: c.PageCount,
		})
	}
	return refs, nil
}

func sortGenres(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}

func genresOrUnknown(names []string) []string {
	if len(names) == 0 {
		return []string{entities.UnknownPlaceholder}
	}
	return names
}
