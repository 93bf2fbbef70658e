package store

import (
	"context"

	"bakked-marketing/internal/models"

	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Save(ctx context.Context, storageURL string) error {
	return r.db.WithContext(ctx).Create(&models.Media{StorageURL: storageURL}).Error
}
