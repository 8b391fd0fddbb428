package persistence

import (
	"context"
	"errors"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM,
// bound to a single tenant at construction time.
type GormOrderRepository struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// NewGormOrderRepository creates an order repository bound to a tenant
func NewGormOrderRepository(db *gorm.DB, tenantID uuid.UUID) *GormOrderRepository {
	return &GormOrderRepository{db: db, tenantID: tenantID}
}

func (r *GormOrderRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("tenant_id = ?", r.tenantID)
}

// FindByID finds an order with its items within the bound tenant
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.scoped(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.scoped(ctx).Model(&trade.Order{}).Preload("Items")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if isPaid, ok := filter.Filters["is_paid"]; ok {
		query = query.Where("is_paid = ?", isPaid)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByContact finds all orders of a contact, newest first
func (r *GormOrderRepository) FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND contact_id = ?", r.tenantID, contactID).
		Preload("Items")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts the bound tenant's orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.scoped(ctx).Model(&trade.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the order header and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	order.TenantID = r.tenantID
	for i := range order.Items {
		order.Items[i].TenantID = r.tenantID
		order.Items[i].OrderID = order.ID
	}
	return r.db.WithContext(ctx).Save(order).Error
}

// ListItems returns the item rows of an order
func (r *GormOrderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]trade.OrderItem, error) {
	var items []trade.OrderItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", r.tenantID, orderID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes the order and its item rows. Stock restoration is the
// caller's responsibility and runs in the same transaction.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&trade.Order{}, "tenant_id = ? AND id = ?", r.tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&trade.OrderItem{}, "tenant_id = ? AND order_id = ?", r.tenantID, id).Error
	})
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
