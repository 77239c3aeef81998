// Package handlers exposes the assessment workspace over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"pp-governance/internal/assessment"
	"pp-governance/internal/database"
	"pp-governance/internal/middleware"
	"pp-governance/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type Handler struct {
	ws *assessment.Workspace
}

func New(ws *assessment.Workspace) *Handler {
	return &Handler{ws: ws}
}

//
// PROJECT LIST
//

func (h *Handler) ListProjects(c *gin.Context) {
	render(c, http.StatusOK, gin.H{
		"projects": h.ws.Projects(),
	})
}

//
// CREATE / DELETE / ACTIVATE
//

type createProjectRequest struct {
	Name      string `json:"name"`
	ClientRef string `json:"clientRef"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.ws.CreateProject(c.Request.Context(), req.Name, req.ClientRef)
	if err != nil {
		if errors.Is(err, assessment.ErrProjectExists) {
			sess := sessions.Default(c)
			sess.AddFlash(fmt.Sprintf("A project named %q already exists.", strings.TrimSpace(req.Name)), middleware.FlashKey)
			_ = sess.Save()
		}
		fail(c, err)
		return
	}

	database.CreateAuditLog("project", p.Name, "create", "Created project: "+p.Name)

	c.Set("ActiveProject", p.Name)
	render(c, http.StatusCreated, gin.H{"project": p})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	name := c.Param("name")
	if err := h.ws.DeleteProject(c.Request.Context(), name); err != nil {
		fail(c, err)
		return
	}

	database.CreateAuditLog("project", name, "delete", "Deleted project: "+name)

	c.Set("ActiveProject", h.ws.ActiveName())
	render(c, http.StatusOK, gin.H{"deleted": name})
}

func (h *Handler) ActivateProject(c *gin.Context) {
	name := c.Param("name")
	if err := h.ws.SetActiveProject(c.Request.Context(), name); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			sess := sessions.Default(c)
			sess.AddFlash(fmt.Sprintf("There is no project named %q.", name), middleware.FlashKey)
			_ = sess.Save()
		}
		fail(c, err)
		return
	}

	database.CreateAuditLog("project", name, "activate", "Activated project: "+name)

	c.Set("ActiveProject", name)
	render(c, http.StatusOK, nil)
}

//
// EXPORT / IMPORT
//

func (h *Handler) ExportProject(c *gin.Context) {
	name := c.Param("name")
	data, err := h.ws.Export(name)
	if err != nil {
		fail(c, err)
		return
	}

	database.CreateAuditLog("project", name, "export", "Exported project: "+name)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName(name)))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportProject takes an exported file as the request body. ?name= renames
// the project on the way in.
func (h *Handler) ImportProject(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		badRequest(c, "empty request body")
		return
	}

	p, err := h.ws.Import(c.Request.Context(), data, c.Query("name"))
	if err != nil {
		fail(c, err)
		return
	}

	database.CreateAuditLog("project", p.Name, "import", "Imported project: "+p.Name)

	c.Set("ActiveProject", p.Name)
	render(c, http.StatusCreated, gin.H{"project": p})
}

func exportFileName(name string) string {
	slug := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '-'
	}, strings.TrimSpace(name))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "project"
	}
	return slug + "-assessment.json"
}
