package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pp-governance/internal/database"
	"pp-governance/internal/models"
	"pp-governance/internal/scoring"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

func (h *Handler) ShowActive(c *gin.Context) {
	p, err := h.ws.Active()
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"project": p})
}

func (h *Handler) ShowStandard(c *gin.Context) {
	std, err := h.ws.Standard(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"standard": std})
}

// answerRequest is the body of a question update. value is decoded against
// the question's answer type; omitting it clears the answer.
// "documentData": null detaches the current document.
type answerRequest struct {
	Value         json.RawMessage      `json:"value"`
	NotApplicable *bool                `json:"notApplicable"`
	EvidenceNotes *string              `json:"evidenceNotes"`
	RiskOwner     *string              `json:"riskOwner"`
	Document      *models.DocumentData `json:"documentData"`
}

func (h *Handler) SaveAnswer(c *gin.Context) {
	slug, id := c.Param("slug"), c.Param("id")

	body, err := c.GetRawData()
	if err != nil || !gjson.ValidBytes(body) {
		badRequest(c, "invalid request body")
		return
	}
	var req answerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	in := scoring.AnswerInput{
		NotApplicable: req.NotApplicable,
		EvidenceNotes: req.EvidenceNotes,
		RiskOwner:     req.RiskOwner,
	}
	if d := gjson.GetBytes(body, "documentData"); d.Exists() && d.Type == gjson.Null {
		in.ClearDocument = true
	}
	if req.Document != nil {
		doc := *req.Document
		if strings.TrimSpace(doc.FileName) == "" {
			badRequest(c, "documentData.fileName is required")
			return
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		if doc.UploadedAt.IsZero() {
			doc.UploadedAt = time.Now().UTC()
		}
		in.Document = &doc
	}

	updated, err := h.ws.RecordRawAnswer(c.Request.Context(), slug, id, req.Value, in)
	if err != nil {
		fail(c, err)
		return
	}

	database.CreateAuditLog("question", slug+"/"+id, "answer",
		fmt.Sprintf("Answered %s on project %s", id, h.ws.ActiveName()))

	render(c, http.StatusOK, gin.H{"standard": updated})
}

func (h *Handler) RescoreStandard(c *gin.Context) {
	std, err := h.ws.Rescore(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"standard": std})
}

func (h *Handler) ShowSummary(c *gin.Context) {
	s, err := h.ws.Summary()
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"summary": s})
}

func (h *Handler) ListPriorities(c *gin.Context) {
	areas, err := h.ws.Priorities()
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"priorities": areas})
}
