package persistence

import (
	"context"
	"errors"

	"github.com/craftbase/backend/internal/domain/crm"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM,
// bound to a single tenant at construction time.
type GormContactRepository struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// NewGormContactRepository creates a contact repository bound to a tenant
func NewGormContactRepository(db *gorm.DB, tenantID uuid.UUID) *GormContactRepository {
	return &GormContactRepository{db: db, tenantID: tenantID}
}

func (r *GormContactRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("tenant_id = ?", r.tenantID)
}

// FindByID finds a contact by its ID within the bound tenant
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Contact, error) {
	var contact crm.Contact
	if err := r.scoped(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindAll finds all contacts matching the filter
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Contact, error) {
	var contacts []crm.Contact
	query := r.scoped(ctx).Model(&crm.Contact{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if stage, ok := filter.Filters["stage"]; ok {
		query = query.Where("stage = ?", stage)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Count counts the bound tenant's contacts
func (r *GormContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.scoped(ctx).Model(&crm.Contact{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *crm.Contact) error {
	contact.TenantID = r.tenantID
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete deletes a contact within the bound tenant. Messages are left in
// place; the conversation history outlives the funnel entry.
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&crm.Contact{}, "tenant_id = ? AND id = ?", r.tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormContactRepository implements ContactRepository
var _ crm.ContactRepository = (*GormContactRepository)(nil)
