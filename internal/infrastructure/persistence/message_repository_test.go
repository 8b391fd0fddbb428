package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMessage(t *testing.T, tenantID, contactID uuid.UUID, direction crm.MessageDirection, content string, sentAt time.Time) *crm.Message {
	t.Helper()
	msg, err := crm.NewMessage(tenantID, contactID, direction, content)
	require.NoError(t, err)
	msg.SentAt = sentAt
	return msg
}

func TestGormMessageRepository_Conversation(t *testing.T) {
	db := setupTestDB(t)
	tenantID := uuid.New()
	repo := NewGormMessageRepository(db, tenantID)
	ctx := context.Background()

	contactID := uuid.New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := mustMessage(t, tenantID, contactID, crm.MessageInbound, "Do you deliver?", base)
	second := mustMessage(t, tenantID, contactID, crm.MessageOutbound, "We do, within town", base.Add(time.Minute))
	third := mustMessage(t, tenantID, contactID, crm.MessageInbound, "Great, two loaves please", base.Add(2*time.Minute))
	for _, m := range []*crm.Message{first, second, third} {
		require.NoError(t, repo.Save(ctx, m))
	}

	t.Run("lists newest first", func(t *testing.T) {
		msgs, err := repo.FindByContact(ctx, contactID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, third.ID, msgs[0].ID)
		assert.Equal(t, first.ID, msgs[2].ID)
	})

	t.Run("latest returns the newest message", func(t *testing.T) {
		latest, err := repo.LatestByContact(ctx, contactID)
		require.NoError(t, err)
		assert.Equal(t, third.ID, latest.ID)
	})

	t.Run("latest reports not found for empty conversations", func(t *testing.T) {
		_, err := repo.LatestByContact(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("counts only unread inbound messages", func(t *testing.T) {
		count, err := repo.CountUnreadByContact(ctx, contactID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("mark read clears the unread count", func(t *testing.T) {
		require.NoError(t, repo.MarkReadByContact(ctx, contactID))

		count, err := repo.CountUnreadByContact(ctx, contactID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("other tenant sees nothing", func(t *testing.T) {
		other := NewGormMessageRepository(db, uuid.New())
		msgs, err := other.FindByContact(ctx, contactID, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}
