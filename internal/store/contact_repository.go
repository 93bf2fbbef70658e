package store

import (
	"context"
	"errors"
	"time"

	"bakked-marketing/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Upsert(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	// Only provided fields may overwrite the existing row; a phone-only upsert
	// from the send path must not erase CRM data.
	assignments := map[string]interface{}{"updated_at": time.Now()}
	if contact.Name != "" {
		assignments["name"] = contact.Name
	}
	if contact.Tags != "" {
		assignments["tags"] = contact.Tags
	}
	if contact.DOB != "" {
		assignments["dob"] = contact.DOB
	}
	if contact.Anniversary != "" {
		assignments["anniversary"] = contact.Anniversary
	}
	if contact.LastVisit != "" {
		assignments["last_visit"] = contact.LastVisit
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(contact).Error
	if err != nil {
		return nil, err
	}

	// The conflict path keeps the existing row's id; read it back.
	var saved models.Contact
	if err := r.db.WithContext(ctx).Where("phone = ?", contact.Phone).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) GetByPhone(ctx context.Context, phone string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Contact, error) {
	result := r.db.WithContext(ctx).Model(&models.Contact{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var contact models.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *ContactRepository) TouchLastMessage(ctx context.Context, contactID, groupName string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Contact{}).Where("id = ?", contactID).Updates(map[string]interface{}{
		"last_message_at":    &now,
		"last_message_group": groupName,
	}).Error
}
