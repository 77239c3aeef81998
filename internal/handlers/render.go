package handlers

import (
	"log"
	"net/http"

	"pp-governance/internal/assessment"
	"pp-governance/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// render writes data as JSON and adds the active project's name, which
// middleware.InjectActiveProject put into the context.
func render(c *gin.Context, status int, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if name, ok := c.Get("ActiveProject"); ok {
		data["activeProject"] = name
	}
	c.JSON(status, data)
}

// fail maps domain errors onto HTTP status codes.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, assessment.ErrProjectExists),
		errors.Is(err, assessment.ErrNoActiveProject):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidAnswer),
		errors.Is(err, models.ErrAnswerMismatch),
		errors.Is(err, assessment.ErrInvalidName),
		errors.Is(err, assessment.ErrInvalidImport):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
