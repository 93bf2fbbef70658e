package store

import (
	"context"
	"testing"

	"bakked-marketing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Contact{},
		&models.Campaign{},
		&models.MessageLog{},
		&models.MessageTemplate{},
	))
	return db
}

func TestContactUpsertInsertsAndUpdates(t *testing.T) {
	repo := NewContactRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.Upsert(ctx, &models.Contact{Phone: "919876543210", Name: "Asha"})
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Asha", first.Name)

	second, err := repo.Upsert(ctx, &models.Contact{Phone: "919876543210", Name: "Asha K", DOB: "1992-03-15"})
	require.NoError(t, err)
	require.NotNil(t, second)

	// Conflict on phone updates in place and keeps the original id.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha K", second.Name)
	assert.Equal(t, "1992-03-15", second.DOB)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestContactUpsertPhoneOnlyKeepsExistingFields(t *testing.T) {
	repo := NewContactRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &models.Contact{
		Phone:       "919876543210",
		Name:        "Asha",
		Tags:        `["regular"]`,
		DOB:         "1992-03-15",
		Anniversary: "2018-11-02",
		LastVisit:   "2025-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	after, err := repo.Upsert(ctx, &models.Contact{Phone: "919876543210"})
	require.NoError(t, err)
	require.NotNil(t, after)

	assert.Equal(t, "Asha", after.Name)
	assert.Equal(t, `["regular"]`, after.Tags)
	assert.Equal(t, "1992-03-15", after.DOB)
	assert.Equal(t, "2018-11-02", after.Anniversary)
	assert.Equal(t, "2025-03-01T10:00:00Z", after.LastVisit)
}

func TestContactGetByPhoneMissing(t *testing.T) {
	repo := NewContactRepository(newTestDB(t))

	contact, err := repo.GetByPhone(context.Background(), "910000000000")
	require.NoError(t, err)
	assert.Nil(t, contact)
}

func TestContactUpdateAndDelete(t *testing.T) {
	repo := NewContactRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Upsert(ctx, &models.Contact{Phone: "911111111111", Name: "Ravi"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, map[string]interface{}{"name": "Ravi S"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Ravi S", updated.Name)

	missing, err := repo.Update(ctx, "no-such-id", map[string]interface{}{"name": "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestContactTouchLastMessage(t *testing.T) {
	repo := NewContactRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Upsert(ctx, &models.Contact{Phone: "912222222222"})
	require.NoError(t, err)
	require.Nil(t, created.LastMessageAt)

	require.NoError(t, repo.TouchLastMessage(ctx, created.ID, "birthday"))

	after, err := repo.GetByPhone(ctx, "912222222222")
	require.NoError(t, err)
	require.NotNil(t, after.LastMessageAt)
	assert.Equal(t, "birthday", after.LastMessageGroup)
}
