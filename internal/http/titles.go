package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mangashelf/mangashelf/internal/entities"
)

// TitlesController serves the library listing and title pages.
type TitlesController struct {
	titles TitleReader
}

func NewTitlesController(titles TitleReader) *TitlesController {
	return &TitlesController{titles: titles}
}

// List handles GET /api/titles
// Query: q (substring of name, artist or writer), genre (repeatable or
// comma-separated, all must match), favorites=true, page, limit.
func (tc *TitlesController) List(c *gin.Context) {
	filter, ok := parseTitleFilter(c)
	if !ok {
		return
	}
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	titles, err := tc.titles.ListTitles(c.Request.Context(), filter)
	if err != nil {
		respondLibraryError(c, err, "list titles")
		return
	}

	c.JSON(http.StatusOK, paginate(titles, page, limit))
}

// Genres handles GET /api/genres
func (tc *TitlesController) Genres(c *gin.Context) {
	genres, err := tc.titles.ListGenres(c.Request.Context())
	if err != nil {
		respondLibraryError(c, err, "list genres")
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// Get handles GET /api/titles/:id
func (tc *TitlesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := tc.titles.GetTitleDetail(c.Request.Context(), id)
	if err != nil {
		respondLibraryError(c, err, "get title")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func parseTitleFilter(c *gin.Context) (entities.TitleFilter, bool) {
	filter := entities.TitleFilter{Query: strings.TrimSpace(c.Query("q"))}

	for _, raw := range c.QueryArray("genre") {
		for _, genre := range strings.Split(raw, ",") {
			if genre = strings.TrimSpace(genre); genre != "" {
				filter.Genres = append(filter.Genres, genre)
			}
		}
	}

	if raw := c.Query("favorites"); raw != "" {
		favorites, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "invalid favorites")
			return filter, false
		}
		filter.FavoritesOnly = favorites
	}
	return filter, true
}
