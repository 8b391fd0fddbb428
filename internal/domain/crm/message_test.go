package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	tenantID := uuid.New()
	contactID := uuid.New()

	t.Run("records pending message with sent time", func(t *testing.T) {
		msg, err := NewMessage(tenantID, contactID, MessageOutbound, "Your order is ready")
		require.NoError(t, err)

		assert.Equal(t, tenantID, msg.TenantID)
		assert.Equal(t, contactID, msg.ContactID)
		assert.Equal(t, MessageOutbound, msg.Direction)
		assert.Equal(t, MessageStatusPending, msg.Status)
		assert.False(t, msg.SentAt.IsZero())
	})

	t.Run("publishes MessageRecorded event", func(t *testing.T) {
		msg, err := NewMessage(tenantID, contactID, MessageOutbound, "hello")
		require.NoError(t, err)

		events := msg.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeMessageRecorded, events[0].EventType())
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		_, err := NewMessage(tenantID, contactID, MessageDirection("sideways"), "hello")
		require.Error(t, err)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewMessage(tenantID, contactID, MessageInbound, "   ")
		require.Error(t, err)
	})
}

func TestMessage_MarkStatus(t *testing.T) {
	msg, err := NewMessage(uuid.New(), uuid.New(), MessageOutbound, "hi")
	require.NoError(t, err)

	require.NoError(t, msg.MarkStatus(MessageStatusSent))
	assert.Equal(t, MessageStatusSent, msg.Status)

	require.Error(t, msg.MarkStatus(MessageStatus("bounced")))
	assert.Equal(t, MessageStatusSent, msg.Status)
}

func TestMessage_IsUnread(t *testing.T) {
	inbound, err := NewMessage(uuid.New(), uuid.New(), MessageInbound, "hi")
	require.NoError(t, err)
	assert.True(t, inbound.IsUnread())

	require.NoError(t, inbound.MarkStatus(MessageStatusRead))
	assert.False(t, inbound.IsUnread())

	outbound, err := NewMessage(uuid.New(), uuid.New(), MessageOutbound, "hi")
	require.NoError(t, err)
	assert.False(t, outbound.IsUnread())
}
