package handlers

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/alimgiray/devfinder/internal/middleware"
	"github.com/alimgiray/devfinder/internal/services"
	"github.com/alimgiray/devfinder/internal/views"
	"github.com/alimgiray/devfinder/web"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, templates, static assets and routes onto a new engine
func SetupRouter(githubService *services.GitHubService, exportService *services.ExportService) (*gin.Engine, error) {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}
	router.StaticFS("/static", http.FS(static))

	searchHandler := NewSearchHandler(githubService)
	exportHandler := NewExportHandler(githubService, exportService)
	healthHandler := NewHealthHandler()
	notFoundHandler := NewNotFoundHandler()

	// Profile search
	router.GET("/", searchHandler.Index)
	router.GET("/export", exportHandler.Export)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	router.NoRoute(notFoundHandler.NotFound)

	return router, nil
}
