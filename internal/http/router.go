package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if cfg.CoverMount != nil {
		staticPath := "/" + strings.Trim(cfg.StaticPath, "/")
		coversController := NewCoversController(cfg.CoverMount)
		router.GET(staticPath+"/*filepath", coversController.Serve)
		router.HEAD(staticPath+"/*filepath", coversController.Serve)
	}

	api := router.Group("/api")

	if cfg.Library != nil {
		titlesController := NewTitlesController(cfg.Library)
		api.GET("/titles", titlesController.List)
		api.GET("/genres", titlesController.Genres)
		api.GET("/titles/:id", titlesController.Get)

		favouritesController := NewFavouritesController(cfg.Library)
		api.POST("/titles/:id/favorite", favouritesController.Favorite)
		api.DELETE("/titles/:id/favorite", favouritesController.Unfavorite)
		api.PUT("/titles/:id/favorite", favouritesController.Set)

		chaptersController := NewChaptersController(cfg.Library)
		api.GET("/titles/:id/chapters/:index", chaptersController.Get)
		api.GET("/chapters/images", chaptersController.Images)

		var enqueuer ScanEnqueuer
		if cfg.TaskQueue != nil {
			enqueuer = cfg.TaskQueue
		}
		libraryController := NewLibraryController(cfg.Library, enqueuer)
		api.GET("/library", libraryController.Overview)
		api.POST("/library/root", libraryController.SetRoot)
		api.POST("/library/scan", libraryController.Scan)
		api.GET("/library/scan/status", libraryController.ScanStatus)
	}

	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
