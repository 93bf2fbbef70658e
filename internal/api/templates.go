package api

import (
	"encoding/json"
	"log"
	"net/http"

	"bakked-marketing/internal/models"
	"bakked-marketing/internal/store"
	"bakked-marketing/internal/templates"
	"bakked-marketing/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	Registry  TemplateRegistry
	Builder   *templates.Builder
	Templates store.TemplateStore
}

func NewTemplateHandler(registry TemplateRegistry, builder *templates.Builder, tmplStore store.TemplateStore) *TemplateHandler {
	return &TemplateHandler{Registry: registry, Builder: builder, Templates: tmplStore}
}

// --- Local template CRUD ---

type LocalTemplateRequest struct {
	Name         string                `json:"name" binding:"required"`
	MessageText  string                `json:"message_text"`
	Category     string                `json:"category"`
	MediaURLs    []string              `json:"media_urls"`
	Buttons      []templates.CTAButton `json:"buttons"`
	CardBodyText string                `json:"card_body_text"`
}

func (h *TemplateHandler) CreateLocalTemplate(c *gin.Context) {
	var req LocalTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mediaJSON, _ := json.Marshal(req.MediaURLs)
	buttonsJSON, _ := json.Marshal(req.Buttons)

	tmpl := models.MessageTemplate{
		Name:         req.Name,
		MessageText:  req.MessageText,
		Category:     req.Category,
		MediaURLs:    string(mediaJSON),
		Buttons:      string(buttonsJSON),
		CardBodyText: req.CardBodyText,
	}
	if err := h.Templates.Create(c.Request.Context(), &tmpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tmpl)
}

func (h *TemplateHandler) GetLocalTemplates(c *gin.Context) {
	list, err := h.Templates.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		list = []models.MessageTemplate{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": list, "count": len(list)})
}

func (h *TemplateHandler) DeleteLocalTemplate(c *gin.Context) {
	deleted, err := h.Templates.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SubmitTemplate builds the Meta registration payload for a stored template
// and submits it for approval. With ?dry_run=true the payload is returned
// without touching the registration endpoint.
func (h *TemplateHandler) SubmitTemplate(c *gin.Context) {
	record, err := h.Templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	local := templates.LocalTemplate{
		Name:         record.Name,
		MessageText:  record.MessageText,
		Category:     record.Category,
		CardBodyText: record.CardBodyText,
	}
	if record.MediaURLs != "" {
		if err := json.Unmarshal([]byte(record.MediaURLs), &local.MediaURLs); err != nil {
			log.Printf("Bad media_urls on template %s: %v", record.ID, err)
		}
	}
	if record.Buttons != "" {
		if err := json.Unmarshal([]byte(record.Buttons), &local.Buttons); err != nil {
			log.Printf("Bad buttons on template %s: %v", record.ID, err)
		}
	}

	payload := h.Builder.Build(c.Request.Context(), local)

	if c.Query("dry_run") == "true" {
		c.JSON(http.StatusOK, gin.H{"dry_run": true, "payload": payload})
		return
	}

	result, err := h.Registry.CreateTemplate(c.Request.Context(), payload)
	if err == whatsapp.ErrNotConfigured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WABA_ID not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Provider state write-back is best-effort; the submission already succeeded.
	status := result.Status
	if status == "" {
		status = "PENDING"
	}
	if dbErr := h.Templates.UpdateMetaStatus(c.Request.Context(), record.ID, result.ID, payload.Name, status); dbErr != nil {
		log.Printf("Template status write-back skipped for %s: %v", record.ID, dbErr)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"meta_template_id": result.ID,
		"meta_name":        payload.Name,
		"status":           status,
	})
}

// --- Meta template proxy ---

func (h *TemplateHandler) ListMetaTemplates(c *gin.Context) {
	list, err := h.Registry.GetTemplates(c.Request.Context())
	if err == whatsapp.ErrNotConfigured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WABA_ID not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": list, "count": len(list)})
}

func (h *TemplateHandler) GetMetaTemplate(c *gin.Context) {
	tmpl, err := h.Registry.GetTemplateByName(c.Request.Context(), c.Param("name"))
	if err == whatsapp.ErrNotConfigured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WABA_ID not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tmpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (h *TemplateHandler) DeleteMetaTemplate(c *gin.Context) {
	err := h.Registry.DeleteTemplate(c.Request.Context(), c.Param("name"))
	if err == whatsapp.ErrNotConfigured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WABA_ID not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
