package store

import (
	"context"

	"bakked-marketing/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, name, baseText string, recipients int) (string, error) {
	campaign := models.Campaign{
		Name:            name,
		MessageText:     baseText,
		TotalRecipients: recipients,
	}
	if err := r.db.WithContext(ctx).Create(&campaign).Error; err != nil {
		return "", err
	}
	return campaign.ID, nil
}

func (r *CampaignRepository) UpdateSentCount(ctx context.Context, campaignID string, sent int) error {
	return r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ?", campaignID).
		Update("sent_count", sent).Error
}

func (r *CampaignRepository) ListCampaigns(ctx context.Context, limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.WithContext(ctx).Order("sent_at DESC").Limit(limit).Find(&campaigns).Error
	return campaigns, err
}

func (r *CampaignRepository) LogMessage(ctx context.Context, contactID, campaignID, waID, status string) error {
	logEntry := models.MessageLog{
		ContactID:  contactID,
		CampaignID: campaignID,
		WaID:       waID,
		Status:     status,
	}
	return r.db.WithContext(ctx).Create(&logEntry).Error
}

func (r *CampaignRepository) UpdateMessageStatus(ctx context.Context, waID, status string) error {
	return r.db.WithContext(ctx).Model(&models.MessageLog{}).
		Where("wa_id = ?", waID).
		Update("status", status).Error
}

func (r *CampaignRepository) ListMessageLogs(ctx context.Context, limit int) ([]models.MessageLog, error) {
	var logs []models.MessageLog
	err := r.db.WithContext(ctx).Order("sent_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
