package server

import (
	"pp-governance/internal/assessment"
	"pp-governance/internal/config"
	"pp-governance/internal/database"
	"pp-governance/internal/handlers"
	"pp-governance/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, ws *assessment.Workspace) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400, HttpOnly: true})
	r.Use(sessions.Sessions("governance_session", store))

	r.Use(middleware.InjectActiveProject(ws))

	h := handlers.New(ws)

	// HEALTHCHECK
	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	api.GET("/warnings", handlers.Warnings)

	// PROJECTS
	api.GET("/projects", h.ListProjects)
	api.POST("/projects", h.CreateProject)
	api.POST("/projects/import", h.ImportProject)
	api.DELETE("/projects/:name", h.DeleteProject)
	api.POST("/projects/:name/activate", h.ActivateProject)
	api.GET("/projects/:name/export", h.ExportProject)

	// ACTIVE PROJECT
	active := api.Group("/active")
	active.Use(middleware.RequireActiveProject(ws))

	active.GET("", h.ShowActive)
	active.GET("/summary", h.ShowSummary)
	active.GET("/priorities", h.ListPriorities)
	active.GET("/standards/:slug", h.ShowStandard)
	active.PUT("/standards/:slug/questions/:id", h.SaveAnswer)
	active.POST("/standards/:slug/rescore", h.RescoreStandard)

	// CLIENTS / AUDIT need the database
	if database.DB != nil {
		api.GET("/clients", handlers.ListClients)
		api.POST("/clients", handlers.CreateClient)
		api.GET("/clients/:id", h.ShowClient)
		api.GET("/audit", handlers.ListAuditLogs)
	}

	return r
}
