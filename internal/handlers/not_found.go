package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotFoundHandler struct{}

func NewNotFoundHandler() *NotFoundHandler {
	return &NotFoundHandler{}
}

// NotFound handles 404 errors for non-existent routes
func (h *NotFoundHandler) NotFound(c *gin.Context) {
	data := gin.H{
		"Title":         "Page not found - DevFinder",
		"Search":        c.Query("search"),
		"RequestedPath": c.Request.URL.Path,
	}

	c.HTML(http.StatusNotFound, "404", data)
}
