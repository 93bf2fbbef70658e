package webhook

import (
	"log"
	"net/http"

	"bakked-marketing/internal/config"
	"bakked-marketing/internal/store"
	"bakked-marketing/pkg/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Config    *config.Config
	Campaigns store.CampaignStore
	Templates store.TemplateStore
}

func NewHandler(cfg *config.Config, campaigns store.CampaignStore, templates store.TemplateStore) *Handler {
	return &Handler{Config: cfg, Campaigns: campaigns, Templates: templates}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.Config.VerifyToken {
		log.Println("Webhook verified successfully")
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// HandleEvent relays message-status and template-status updates into the
// stores. Every write is best-effort; the webhook always acks with 200 so
// Meta does not retry forever.
func (h *Handler) HandleEvent(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("Webhook bind error: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			value := change.Value

			for _, status := range value.Statuses {
				if status.ID == "" || status.Status == "" {
					continue
				}
				if err := h.Campaigns.UpdateMessageStatus(ctx, status.ID, status.Status); err != nil {
					log.Printf("Status update skipped for %s: %v", status.ID, err)
				} else {
					log.Printf("Status update: %s -> %s", status.ID, status.Status)
				}
			}

			switch change.Field {
			case "message_template_status_update":
				if value.MessageTemplateName != "" && value.Event != "" {
					updated, err := h.Templates.UpdateStatusByMetaName(ctx, value.MessageTemplateName, value.Event, "")
					if err != nil {
						log.Printf("Template status update skipped for %s: %v", value.MessageTemplateName, err)
					} else if updated {
						log.Printf("Template status: %s -> %s", value.MessageTemplateName, value.Event)
					}
				}
			case "message_template_quality_update":
				if value.MessageTemplateName != "" && value.NewQualityScore != "" {
					if _, err := h.Templates.UpdateStatusByMetaName(ctx, value.MessageTemplateName, "APPROVED", value.NewQualityScore); err != nil {
						log.Printf("Template quality update skipped for %s: %v", value.MessageTemplateName, err)
					}
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
