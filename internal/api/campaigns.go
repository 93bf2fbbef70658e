package api

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"bakked-marketing/internal/engine"
	"bakked-marketing/internal/models"
	"bakked-marketing/internal/store"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	Sender    TemplateSender
	Contacts  store.ContactStore
	Campaigns store.CampaignStore
}

func NewCampaignHandler(sender TemplateSender, contacts store.ContactStore, campaigns store.CampaignStore) *CampaignHandler {
	return &CampaignHandler{Sender: sender, Contacts: contacts, Campaigns: campaigns}
}

type BulkCampaignRequest struct {
	Type               string              `json:"type" binding:"required"` // birthday, anniversary, festival, nudge, custom
	MessageText        string              `json:"message_text"`
	MessageVariations  []string            `json:"message_variations"`
	MediaURL           string              `json:"media_url"` // legacy single media
	MediaConfig        *engine.MediaConfig `json:"media_config"`
	SpecificRecipients []string            `json:"specific_recipients"`
	NudgeDays          *int                `json:"nudge_days"`
}

// BulkSummary is the aggregate a bulk send always returns, even when some
// recipients fail.
type BulkSummary struct {
	Sent   int `json:"sent_count"`
	Failed int `json:"failed_count"`
	Total  int `json:"total"`
}

// SendBulkCampaign sends one message per recipient, sequentially. Recipient
// failures are counted and never abort the loop.
func (h *CampaignHandler) SendBulkCampaign(c *gin.Context) {
	var req BulkCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	contacts, err := h.selectRecipients(ctx, &req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Database error: " + err.Error(), "sent_count": 0})
		return
	}
	if len(contacts) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "No recipients found", "sent_count": 0})
		return
	}

	// Campaign record is best-effort; the send proceeds without it.
	campaignName := fmt.Sprintf("%s Campaign - %s", capitalize(req.Type), time.Now().Format("2006-01-02"))
	campaignID, err := h.Campaigns.CreateCampaign(ctx, campaignName, req.MessageText, len(contacts))
	if err != nil {
		log.Printf("Failed to create campaign record: %v", err)
	}

	summary := h.sendToAll(ctx, contacts, &req, campaignID)

	if campaignID != "" {
		if err := h.Campaigns.UpdateSentCount(ctx, campaignID, summary.Sent); err != nil {
			log.Printf("Failed to update campaign stats: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      summary.Sent > 0,
		"sent_count":   summary.Sent,
		"failed_count": summary.Failed,
		"total":        summary.Total,
	})
}

// capitalize uppercases the first letter of a campaign type. The type
// vocabulary is lowercase ASCII, so byte slicing is safe here.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (h *CampaignHandler) selectRecipients(ctx context.Context, req *BulkCampaignRequest) ([]models.Contact, error) {
	if len(req.SpecificRecipients) > 0 {
		var contacts []models.Contact
		for _, phone := range req.SpecificRecipients {
			contact, err := h.Contacts.GetByPhone(ctx, phone)
			if err != nil {
				return nil, err
			}
			if contact != nil {
				contacts = append(contacts, *contact)
			}
		}
		return contacts, nil
	}

	all, err := h.Contacts.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	nudgeDays := -1
	if req.NudgeDays != nil {
		nudgeDays = *req.NudgeDays
	}
	return filterAudience(all, req.Type, nudgeDays, time.Now()), nil
}

// sendToAll folds over the recipient list producing an immutable summary.
// Ordering is intentional: sends stay sequential against provider rate limits.
func (h *CampaignHandler) sendToAll(ctx context.Context, contacts []models.Contact, req *BulkCampaignRequest, campaignID string) BulkSummary {
	summary := BulkSummary{Total: len(contacts)}

	for _, contact := range contacts {
		if contact.Phone == "" {
			summary.Failed++
			continue
		}

		baseMessage := req.MessageText
		if len(req.MessageVariations) > 0 {
			baseMessage = req.MessageVariations[rand.Intn(len(req.MessageVariations))]
		}
		message := engine.ResolvePlaceholders(baseMessage, engine.ContactInfo{
			Name:      contact.Name,
			Phone:     contact.Phone,
			LastVisit: contact.LastVisit,
		})

		mediaURLs := engine.SelectMedia(req.MediaConfig, req.MediaURL)

		templateName, components := engine.Route(message, mediaURLs, "")
		msg := engine.BuildTemplateMessage(contact.Phone, templateName, components)

		messageID, err := h.Sender.SendTemplate(ctx, msg)
		if err != nil {
			summary.Failed++
			log.Printf("Failed to send to %s: %v", contact.Phone, err)
			continue
		}
		summary.Sent++

		// Write-backs are best-effort and never affect the counters.
		if dbErr := h.Campaigns.LogMessage(ctx, contact.ID, campaignID, messageID, "sent"); dbErr != nil {
			log.Printf("Message log skipped for %s: %v", contact.Phone, dbErr)
		}
		if dbErr := h.Contacts.TouchLastMessage(ctx, contact.ID, req.Type); dbErr != nil {
			log.Printf("Contact tracking skipped for %s: %v", contact.Phone, dbErr)
		}
	}

	return summary
}

// GetCampaigns lists past campaign runs.
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.Campaigns.ListCampaigns(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns, "count": len(campaigns)})
}

// GetMessageLogs lists recent delivery logs.
func (h *CampaignHandler) GetMessageLogs(c *gin.Context) {
	logs, err := h.Campaigns.ListMessageLogs(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []models.MessageLog{}
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
