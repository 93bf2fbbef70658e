package api

import (
	"log"
	"net/http"

	"bakked-marketing/internal/engine"
	"bakked-marketing/internal/models"
	"bakked-marketing/internal/store"
	"bakked-marketing/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	Sender    TemplateSender
	Contacts  store.ContactStore
	Campaigns store.CampaignStore
}

func NewMessageHandler(sender TemplateSender, contacts store.ContactStore, campaigns store.CampaignStore) *MessageHandler {
	return &MessageHandler{Sender: sender, Contacts: contacts, Campaigns: campaigns}
}

type SendMessageRequest struct {
	Recipient    string   `json:"recipient" binding:"required"`
	TextContent  string   `json:"text_content"`
	MediaURLs    []string `json:"media_urls"`
	TemplateName string   `json:"template_name"`
}

type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendMessage routes a send-intent through the decision engine and dispatches it.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateName, components := engine.Route(req.TextContent, req.MediaURLs, req.TemplateName)
	msg := engine.BuildTemplateMessage(req.Recipient, templateName, components)

	messageID, err := h.Sender.SendTemplate(c.Request.Context(), msg)
	if err == whatsapp.ErrNotConfigured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WhatsApp API credentials not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, SendMessageResponse{Success: false, Error: err.Error()})
		return
	}

	// Best-effort persistence; a failed write-back never fails the send.
	if contact, dbErr := h.Contacts.Upsert(c.Request.Context(), &models.Contact{Phone: req.Recipient}); dbErr != nil {
		log.Printf("Contact save skipped: %v", dbErr)
	} else if contact != nil {
		if dbErr := h.Campaigns.LogMessage(c.Request.Context(), contact.ID, "", messageID, "sent"); dbErr != nil {
			log.Printf("Message log skipped: %v", dbErr)
		}
	}

	c.JSON(http.StatusOK, SendMessageResponse{Success: true, MessageID: messageID})
}

type TestMessageRequest struct {
	Phone        string   `json:"phone" binding:"required"`
	Message      string   `json:"message"`
	MediaURLs    []string `json:"media_urls"`
	TemplateName string   `json:"template_name"`
}

// SendTestMessage reuses the decision engine path for a single phone number.
func (h *MessageHandler) SendTestMessage(c *gin.Context) {
	var req TestMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	templateName, components := engine.Route(req.Message, req.MediaURLs, req.TemplateName)
	msg := engine.BuildTemplateMessage(req.Phone, templateName, components)

	messageID, err := h.Sender.SendTemplate(c.Request.Context(), msg)
	if err == whatsapp.ErrNotConfigured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WhatsApp API credentials not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, SendMessageResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SendMessageResponse{Success: true, MessageID: messageID})
}
