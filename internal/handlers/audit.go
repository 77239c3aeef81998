package handlers

import (
	"net/http"

	"pp-governance/internal/database"
	"pp-governance/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ListAuditLogs returns the latest 200 entries, newest first. ?entity=
// narrows them to one kind.
func ListAuditLogs(c *gin.Context) {
	q := database.DB.Order("created_at desc").Limit(200)
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		fail(c, errors.Wrap(err, "load audit log"))
		return
	}

	render(c, http.StatusOK, gin.H{"logs": logs})
}
