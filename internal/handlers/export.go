package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/devfinder/internal/middleware"
	"github.com/alimgiray/devfinder/internal/services"
	"github.com/alimgiray/devfinder/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	githubService *services.GitHubService
	exportService *services.ExportService
}

func NewExportHandler(githubService *services.GitHubService, exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		githubService: githubService,
		exportService: exportService,
	}
}

// Export downloads the searched profile as a spreadsheet
func (h *ExportHandler) Export(c *gin.Context) {
	search := c.Query("search")
	if search == "" {
		redirectToDefault(c, "/export")
		return
	}

	profile, err := h.githubService.FetchProfile(c.Request.Context(), search)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	if err != nil {
		h.fail(c, search, err)
		return
	}

	f, err := h.exportService.BuildWorkbook(profile)
	if err != nil {
		h.fail(c, search, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.fail(c, search, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename(profile.Login)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) fail(c *gin.Context, search string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"search":     search,
		"request_id": middleware.GetRequestID(c),
	}).Error("Failed to export GitHub user")

	c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage})
}
