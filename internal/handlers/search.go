package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alimgiray/devfinder/internal/middleware"
	"github.com/alimgiray/devfinder/internal/models"
	"github.com/alimgiray/devfinder/internal/services"
	"github.com/alimgiray/devfinder/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DefaultSearch is the login shown when no search term is given.
const DefaultSearch = "kentcdodds"

const (
	notFoundMessage = "Not found"
	errorMessage    = "An error occurred"
)

type SearchHandler struct {
	githubService *services.GitHubService
}

func NewSearchHandler(githubService *services.GitHubService) *SearchHandler {
	return &SearchHandler{
		githubService: githubService,
	}
}

// Index looks up the searched login and renders its profile
func (h *SearchHandler) Index(c *gin.Context) {
	search := c.Query("search")
	if search == "" {
		redirectToDefault(c, "/")
		return
	}

	profile, err := h.githubService.FetchProfile(c.Request.Context(), search)
	if errors.Is(err, services.ErrNotFound) {
		render(c, http.StatusNotFound, "alert", gin.H{
			"Title":            models.NotFoundTitle,
			"Search":           search,
			"AlertTitle":       "User not found",
			"AlertDescription": fmt.Sprintf("We couldn't find a GitHub user by the login \"%s\".", search),
		}, gin.H{"error": notFoundMessage})
		return
	}
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"search":     search,
			"request_id": middleware.GetRequestID(c),
		}).Error("Failed to load GitHub user")

		render(c, http.StatusInternalServerError, "alert", gin.H{
			"Title":            "An error occured - DevFinder",
			"Search":           search,
			"AlertTitle":       "An error occured",
			"AlertDescription": fmt.Sprintf("There was an error loading GitHub user by the login \"%s\". Sorry about that.", search),
		}, gin.H{"error": errorMessage})
		return
	}

	render(c, http.StatusOK, "index", gin.H{
		"Title":   profile.PageTitle(),
		"Search":  search,
		"Profile": profile,
	}, profile)
}

// render writes JSON when the client prefers it and HTML otherwise, including
// when the Accept header matches neither.
func render(c *gin.Context, code int, name string, htmlData gin.H, jsonData interface{}) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(code, jsonData)
		return
	}
	c.HTML(code, name, htmlData)
}

// redirectToDefault sends the client to path with the default search term filled in.
func redirectToDefault(c *gin.Context, path string) {
	query := url.Values{"search": []string{DefaultSearch}}
	c.Redirect(http.StatusFound, path+"?"+query.Encode())
}
