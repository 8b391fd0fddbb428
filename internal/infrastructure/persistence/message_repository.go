package persistence

import (
	"context"
	"errors"

	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository using GORM,
// bound to a single tenant at construction time.
type GormMessageRepository struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// NewGormMessageRepository creates a message repository bound to a tenant
func NewGormMessageRepository(db *gorm.DB, tenantID uuid.UUID) *GormMessageRepository {
	return &GormMessageRepository{db: db, tenantID: tenantID}
}

// FindByContact returns the contact's messages, newest first
func (r *GormMessageRepository) FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]crm.Message, error) {
	var messages []crm.Message
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND contact_id = ?", r.tenantID, contactID)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("sent_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// LatestByContact returns the most recent message of a contact
func (r *GormMessageRepository) LatestByContact(ctx context.Context, contactID uuid.UUID) (*crm.Message, error) {
	var message crm.Message
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND contact_id = ?", r.tenantID, contactID).
		Order("sent_at DESC").
		First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// CountUnreadByContact counts inbound messages that have not reached read status
func (r *GormMessageRepository) CountUnreadByContact(ctx context.Context, contactID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&crm.Message{}).
		Where("tenant_id = ? AND contact_id = ? AND direction = ? AND status <> ?",
			r.tenantID, contactID, crm.MessageInbound, crm.MessageStatusRead).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a message
func (r *GormMessageRepository) Save(ctx context.Context, message *crm.Message) error {
	message.TenantID = r.tenantID
	return r.db.WithContext(ctx).Save(message).Error
}

// MarkReadByContact marks every inbound message of the contact read
func (r *GormMessageRepository) MarkReadByContact(ctx context.Context, contactID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&crm.Message{}).
		Where("tenant_id = ? AND contact_id = ? AND direction = ? AND status <> ?",
			r.tenantID, contactID, crm.MessageInbound, crm.MessageStatusRead).
		Update("status", crm.MessageStatusRead).Error
}

// Ensure GormMessageRepository implements MessageRepository
var _ crm.MessageRepository = (*GormMessageRepository)(nil)
