package handlers

import (
	"net/http"

	"pp-governance/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Warnings returns and clears the flash warnings of the caller's session.
func Warnings(c *gin.Context) {
	sess := sessions.Default(c)
	warnings := []string{}
	for _, f := range sess.Flashes(middleware.FlashKey) {
		if s, ok := f.(string); ok {
			warnings = append(warnings, s)
		}
	}
	_ = sess.Save()

	render(c, http.StatusOK, gin.H{"warnings": warnings})
}
