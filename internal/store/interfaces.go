package store

import (
	"context"

	"bakked-marketing/internal/models"
)

// ContactStore is the CRM contact collaborator.
type ContactStore interface {
	Upsert(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	GetAll(ctx context.Context) ([]models.Contact, error)
	GetByPhone(ctx context.Context, phone string) (*models.Contact, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
	TouchLastMessage(ctx context.Context, contactID, groupName string) error
}

// CampaignStore persists campaigns and per-message delivery logs.
type CampaignStore interface {
	CreateCampaign(ctx context.Context, name, baseText string, recipients int) (string, error)
	UpdateSentCount(ctx context.Context, campaignID string, sent int) error
	ListCampaigns(ctx context.Context, limit int) ([]models.Campaign, error)
	LogMessage(ctx context.Context, contactID, campaignID, waID, status string) error
	UpdateMessageStatus(ctx context.Context, waID, status string) error
	ListMessageLogs(ctx context.Context, limit int) ([]models.MessageLog, error)
}

// TemplateStore persists locally authored templates and their provider state.
type TemplateStore interface {
	Create(ctx context.Context, tmpl *models.MessageTemplate) error
	Get(ctx context.Context, id string) (*models.MessageTemplate, error)
	List(ctx context.Context, category string) ([]models.MessageTemplate, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateMetaStatus(ctx context.Context, id, metaTemplateID, metaName, status string) error
	UpdateStatusByMetaName(ctx context.Context, metaName, status, quality string) (bool, error)
}

// GroupStore persists saved recipient audiences.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.RecipientGroup, memberIDs []string) (string, error)
	ListGroups(ctx context.Context, groupType string) ([]models.RecipientGroup, error)
}

// MediaStore records uploaded assets.
type MediaStore interface {
	Save(ctx context.Context, storageURL string) error
}
