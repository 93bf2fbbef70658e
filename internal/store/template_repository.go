package store

import (
	"context"
	"errors"

	"bakked-marketing/internal/models"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, tmpl *models.MessageTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

func (r *TemplateRepository) Get(ctx context.Context, id string) (*models.MessageTemplate, error) {
	var tmpl models.MessageTemplate
	err := r.db.WithContext(ctx).First(&tmpl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *TemplateRepository) List(ctx context.Context, category string) ([]models.MessageTemplate, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var templates []models.MessageTemplate
	err := query.Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.MessageTemplate{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *TemplateRepository) UpdateMetaStatus(ctx context.Context, id, metaTemplateID, metaName, status string) error {
	return r.db.WithContext(ctx).Model(&models.MessageTemplate{}).Where("id = ?", id).Updates(map[string]interface{}{
		"meta_template_id": metaTemplateID,
		"meta_name":        metaName,
		"meta_status":      status,
	}).Error
}

func (r *TemplateRepository) UpdateStatusByMetaName(ctx context.Context, metaName, status, quality string) (bool, error) {
	updates := map[string]interface{}{"meta_status": status}
	if quality != "" {
		updates["quality_score"] = quality
	}
	result := r.db.WithContext(ctx).Model(&models.MessageTemplate{}).
		Where("meta_name = ?", metaName).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}
