package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FavouritesController toggles the favorite flag of titles.
type FavouritesController struct {
	store FavouritesWriter
}

func NewFavouritesController(store FavouritesWriter) *FavouritesController {
	return &FavouritesController{store: store}
}

// SetFavoriteRequest is the body of PUT /api/titles/:id/favorite.
type SetFavoriteRequest struct {
	Favorited *bool `json:"favorited" binding:"required"`
}

// Favorite handles POST /api/titles/:id/favorite
func (fc *FavouritesController) Favorite(c *gin.Context) {
	fc.update(c, true)
}

// Unfavorite handles DELETE /api/titles/:id/favorite
func (fc *FavouritesController) Unfavorite(c *gin.Context) {
	fc.update(c, false)
}

// Set handles PUT /api/titles/:id/favorite
func (fc *FavouritesController) Set(c *gin.Context) {
	var req SetFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "favorited is required")
		return
	}
	fc.update(c, *req.Favorited)
}

func (fc *FavouritesController) update(c *gin.Context, favorited bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := fc.store.SetFavorited(c.Request.Context(), id, favorited)
	if err != nil {
		respondLibraryError(c, err, "set favorite")
		return
	}

	if !result.Success {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "title not found", Details: result})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title_id":      id,
		"favorited":     favorited,
		"success":       result.Success,
		"affected_rows": result.AffectedRows,
	})
}
