package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mangashelf/mangashelf/internal/covers"
)

// CoversController serves cover images and other files from the active
// library root, at the URLs the scanner records.
type CoversController struct {
	mount *covers.Mount
}

// NewCoversController creates a new CoversController.
func NewCoversController(mount *covers.Mount) *CoversController {
	return &CoversController{mount: mount}
}

// Serve handles GET /manga/*filepath
func (cc *CoversController) Serve(c *gin.Context) {
	path, err := cc.mount.Resolve(c.Param("filepath"))
	switch {
	case errors.Is(err, covers.ErrOutsideRoot):
		c.Status(http.StatusForbidden)
		return
	case err != nil:
		c.Status(http.StatusNotFound)
		return
	}

	c.File(path)
}
