package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ChaptersController serves chapter navigation and page data.
type ChaptersController struct {
	chapters ChapterReader
}

func NewChaptersController(chapters ChapterReader) *ChaptersController {
	return &ChaptersController{chapters: chapters}
}

// Get handles GET /api/titles/:id/chapters/:index
func (cc *ChaptersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	detail, err := cc.chapters.GetChapterDetail(c.Request.Context(), id, index)
	if err != nil {
		respondLibraryError(c, err, "get chapter")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Images handles GET /api/chapters/images?path=
// An unreadable archive yields an empty page list rather than an error.
func (cc *ChaptersController) Images(c *gin.Context) {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		respondBadRequest(c, "path is required")
		return
	}

	images, err := cc.chapters.GetChapterImages(c.Request.Context(), path)
	if err != nil {
		respondLibraryError(c, err, "get chapter images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":   path,
		"count":  len(images),
		"images": images,
	})
}
