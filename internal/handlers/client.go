package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pp-governance/internal/assessment"
	"pp-governance/internal/database"
	"pp-governance/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Client handlers are only routed when a database is configured.

func ListClients(c *gin.Context) {
	var clients []models.Client
	if err := database.DB.Order("name asc").Find(&clients).Error; err != nil {
		fail(c, errors.Wrap(err, "load clients"))
		return
	}
	render(c, http.StatusOK, gin.H{"clients": clients})
}

type clientRequest struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	Notes        string `json:"notes"`
}

func CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	contactEmail := strings.TrimSpace(req.ContactEmail)
	if len(name) < 2 {
		badRequest(c, "client name must be at least 2 characters")
		return
	}

	// --- unique name ---
	var count int64
	database.DB.Model(&models.Client{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count)
	if count > 0 {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "a client with this name already exists"})
		return
	}

	// --- unique email ---
	if contactEmail != "" {
		database.DB.Model(&models.Client{}).
			Where("LOWER(contact_email) = LOWER(?)", contactEmail).
			Count(&count)
		if count > 0 {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "a client with this e-mail already exists"})
			return
		}
	}

	client := models.Client{
		Name:         name,
		Industry:     strings.TrimSpace(req.Industry),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: contactEmail,
		Notes:        strings.TrimSpace(req.Notes),
	}
	if err := database.DB.Create(&client).Error; err != nil {
		fail(c, errors.Wrap(err, "save client"))
		return
	}

	database.CreateAuditLog("client", strconv.FormatUint(uint64(client.ID), 10), "create", "Created client: "+client.Name)

	render(c, http.StatusCreated, gin.H{"client": client})
}

// ShowClient returns one client with the projects that reference it.
func (h *Handler) ShowClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid client id")
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, models.NotFound("client", c.Param("id")))
			return
		}
		fail(c, errors.Wrap(err, "load client"))
		return
	}

	projects := []assessment.Listing{}
	for _, p := range h.ws.Projects() {
		if strings.EqualFold(p.ClientRef, client.Name) {
			projects = append(projects, p)
		}
	}

	render(c, http.StatusOK, gin.H{
		"client":   client,
		"projects": projects,
	})
}
