package entities

// The types below are the canonical read models handed to the HTTP layer.
// Every endpoint serializes the same shape for the same concept.

// TitleSummary is one row of the library listing.
type TitleSummary struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Favorited    bool     `json:"favorited"`
	CoverURL     string   `json:"cover_url"`
	Artist       string   `json:"artist"`
	Writer       string   `json:"writer"`
	Genres       []string `json:"genres"`
	ChapterCount int64    `json:"chapter_count"`
}

// ChapterRef is a chapter entry in title and reader sidebars.
type ChapterRef struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
}

// TitleDetail is a title with its genres and ordered chapter list.
type TitleDetail struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	CoverURL  string       `json:"cover_url"`
	Summary   string       `json:"summary"`
	Artist    string       `json:"artist"`
	Writer    string       `json:"writer"`
	Favorited bool         `json:"favorited"`
	Genres    []string     `json:"genres"`
	Chapters  []ChapterRef `json:"chapters"`
}

// ChapterDetail describes one chapter plus the navigation state around it.
// HasNext and HasPrevious are derived from the chapter count, not from
// checking that the neighbouring index exists.
type ChapterDetail struct {
	Index         int          `json:"index"`
	Name          string       `json:"name"`
	Path          string       `json:"path"`
	PageCount     int          `json:"page_count"`
	TitleID       uint         `json:"title_id"`
	TitleName     string       `json:"title_name"`
	TotalChapters int64        `json:"total_chapters"`
	HasNext       bool         `json:"has_next"`
	HasPrevious   bool         `json:"has_previous"`
	Chapters      []ChapterRef `json:"chapters"`
}

// FavoriteResult reports the outcome of a favorite toggle.
type FavoriteResult struct {
	Success      bool  `json:"success"`
	AffectedRows int64 `json:"affected_rows"`
}

// TitleFilter narrows a title listing. Zero value matches everything.
type TitleFilter struct {
	Query         string   // substring of name, artist or writer, case-insensitive
	Genres        []string // title must carry all of them
	FavoritesOnly bool
}

// CatalogStats counts rows per catalog table.
type CatalogStats struct {
	BaseFolders int64 `json:"base_folders"`
	Titles      int64 `json:"titles"`
	Genres      int64 `json:"genres"`
	TitleGenres int64 `json:"title_genres"`
	Chapters    int64 `json:"chapters"`
}
