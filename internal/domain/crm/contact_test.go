package crm

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
)

func TestNewContact(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates contact in lead stage", func(t *testing.T) {
		contact, err := NewContact(tenantID, "Ada Lovelace", "+44 1234")
		require.NoError(t, err)

		assert.Equal(t, tenantID, contact.TenantID)
		assert.Equal(t, "Ada Lovelace", contact.Name)
		assert.Equal(t, "+44 1234", contact.Phone)
		assert.Equal(t, DealStageLead, contact.Stage)
		assert.True(t, contact.Value.IsZero())
	})

	t.Run("trims name and phone", func(t *testing.T) {
		contact, err := NewContact(tenantID, "  Ada  ", " 123 ")
		require.NoError(t, err)
		assert.Equal(t, "Ada", contact.Name)
		assert.Equal(t, "123", contact.Phone)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewContact(tenantID, "   ", "123")
		require.Error(t, err)
	})
}

func TestContact_MoveToStage(t *testing.T) {
	contact, err := NewContact(uuid.New(), "Ada", "")
	require.NoError(t, err)

	require.NoError(t, contact.MoveToStage(DealStageCustomer))
	assert.Equal(t, DealStageCustomer, contact.Stage)

	require.Error(t, contact.MoveToStage(DealStage("vip")))
	assert.Equal(t, DealStageCustomer, contact.Stage)
}

func TestContact_SetValue(t *testing.T) {
	contact, err := NewContact(uuid.New(), "Ada", "")
	require.NoError(t, err)

	require.NoError(t, contact.SetValue(decimal.RequireFromString("150.00")))
	assert.True(t, contact.Value.Equal(decimal.RequireFromString("150.00")))

	require.Error(t, contact.SetValue(decimal.NewFromInt(-5)))
}

func TestContact_TagList(t *testing.T) {
	contact, err := NewContact(uuid.New(), "Ada", "")
	require.NoError(t, err)

	assert.Nil(t, contact.TagList())

	contact.Tags = "wholesale, vip,, weekly "
	assert.Equal(t, []string{"wholesale", "vip", "weekly"}, contact.TagList())
}
