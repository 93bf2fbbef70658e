package store

import (
	"context"

	"bakked-marketing/internal/models"

	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) CreateGroup(ctx context.Context, group *models.RecipientGroup, memberIDs []string) (string, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		if group.Type == "manual" && len(memberIDs) > 0 {
			members := make([]models.GroupMember, len(memberIDs))
			for i, contactID := range memberIDs {
				members[i] = models.GroupMember{GroupID: group.ID, ContactID: contactID}
			}
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return group.ID, nil
}

func (r *GroupRepository) ListGroups(ctx context.Context, groupType string) ([]models.RecipientGroup, error) {
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if groupType != "" {
		query = query.Where("type = ?", groupType)
	}
	var groups []models.RecipientGroup
	err := query.Order("created_at DESC").Find(&groups).Error
	return groups, err
}
