package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignCreateAndStats(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t))
	ctx := context.Background()

	id, err := repo.CreateCampaign(ctx, "Birthday Campaign - 2025-03-15", "Happy birthday [Name]!", 12)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, repo.UpdateSentCount(ctx, id, 11))

	campaigns, err := repo.ListCampaigns(ctx, 50)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, 12, campaigns[0].TotalRecipients)
	assert.Equal(t, 11, campaigns[0].SentCount)
}

func TestMessageLogStatusRelay(t *testing.T) {
	repo := NewCampaignRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.LogMessage(ctx, "contact-1", "camp-1", "wamid.1", "sent"))
	require.NoError(t, repo.LogMessage(ctx, "contact-2", "camp-1", "wamid.2", "sent"))

	require.NoError(t, repo.UpdateMessageStatus(ctx, "wamid.2", "delivered"))

	logs, err := repo.ListMessageLogs(ctx, 100)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	byWaID := map[string]string{}
	for _, l := range logs {
		byWaID[l.WaID] = l.Status
	}
	assert.Equal(t, "sent", byWaID["wamid.1"])
	assert.Equal(t, "delivered", byWaID["wamid.2"])
}
