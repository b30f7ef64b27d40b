package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mangashelf/mangashelf/internal/database"
	"github.com/mangashelf/mangashelf/internal/library"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondServiceUnavailable sends a 503 response with a machine-readable code.
func respondServiceUnavailable(c *gin.Context, code, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: message, Code: code})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondLibraryError maps façade and catalog errors onto status codes.
func respondLibraryError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, database.ErrTitleNotFound):
		respondNotFound(c, "title")
	case errors.Is(err, database.ErrChapterNotFound):
		respondNotFound(c, "chapter")
	case errors.Is(err, library.ErrInvalidRoot):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_root"})
	case errors.Is(err, library.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_argument"})
	case errors.Is(err, database.ErrCatalogUnavailable):
		log.Printf("Catalog unavailable (%s): %v", operation, err)
		respondServiceUnavailable(c, "catalog_unavailable", "catalog unavailable")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondServiceUnavailable(c, "scan_in_progress", "library scan still in progress")
	default:
		respondInternalError(c, err, operation)
	}
}

// --- Success Response Helpers ---

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseIndexParam extracts a 1-based chapter index from URL parameters.
func parseIndexParam(c *gin.Context, paramName string) (int, bool) {
	index, err := strconv.Atoi(c.Param(paramName))
	if err != nil || index < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return index, true
}

// parsePagination reads page and limit query parameters.
// Missing values fall back to page 1 and the default limit.
func parsePagination(c *gin.Context) (page, limit int, ok bool) {
	page, limit = 1, defaultPageLimit

	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(c, "invalid page")
			return 0, 0, false
		}
		page = parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(c, "invalid limit")
			return 0, 0, false
		}
		limit = min(parsed, maxPageLimit)
	}
	return page, limit, true
}

// paginate slices items for the requested page and builds the envelope.
// Pages past the end are empty and report the total as their offset.
func paginate[T any](items []T, page, limit int) PaginatedResponse {
	total := len(items)
	offset := total
	if page-1 <= total/limit {
		offset = (page - 1) * limit
	}
	start := min(offset, total)
	end := min(start+limit, total)

	return PaginatedResponse{
		Data:       items[start:end],
		Total:      int64(total),
		Page:       page,
		Limit:      limit,
		Offset:     offset,
		HasMore:    end < total,
		TotalPages: (total + limit - 1) / limit,
	}
}
