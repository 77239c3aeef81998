package middleware

import (
	"net/http"

	"pp-governance/internal/assessment"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// FlashKey is the session flash bucket for user-facing warnings.
const FlashKey = "warnings"

// InjectActiveProject puts the active project's name (possibly "") into the
// request context as "ActiveProject".
func InjectActiveProject(ws *assessment.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ActiveProject", ws.ActiveName())
		c.Next()
	}
}

// RequireActiveProject stops the request with 409 when no project is active
// and leaves a warning for the client to pick up.
func RequireActiveProject(ws *assessment.Workspace) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ws.ActiveName() != "" {
			c.Next()
			return
		}

		sess := sessions.Default(c)
		sess.AddFlash("No active project. Create or select a project first.", FlashKey)
		_ = sess.Save()

		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error": assessment.ErrNoActiveProject.Error(),
		})
	}
}
