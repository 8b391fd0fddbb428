package trade

import (
	"time"

	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment stage of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is a known value
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a customer order. Creating one decrements product stock by each
// line quantity; deleting one restores exactly what it deducted.
type Order struct {
	shared.TenantAggregateRoot
	ContactID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsPaid      bool            `gorm:"not null;default:false"`
	Notes       string          `gorm:"type:text"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line of an order. UnitPrice is captured at
// order-creation time so historical orders are immune to later price
// changes.
type OrderItem struct {
	shared.BaseEntity
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity times captured unit price
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// NewOrder creates a pending order for a contact
func NewOrder(tenantID, contactID uuid.UUID) *Order {
	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContactID:           contactID,
		Status:              OrderStatusPending,
		Total:               decimal.Zero,
		DeliveryFee:         decimal.Zero,
	}
}

// AddItem appends a product line and recomputes the total
func (o *Order) AddItem(productID uuid.UUID, quantity, unitPrice decimal.Decimal) (*OrderItem, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Order item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Order item unit price cannot be negative")
	}
	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   o.TenantID,
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}
	o.Items = append(o.Items, item)
	o.RecalculateTotal()
	return &o.Items[len(o.Items)-1], nil
}

// SetDeliveryFee updates the fee and recomputes the total
func (o *Order) SetDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Delivery fee cannot be negative")
	}
	o.DeliveryFee = fee
	o.RecalculateTotal()
	return nil
}

// ChangeStatus moves the order to a new fulfilment stage
func (o *Order) ChangeStatus(status OrderStatus) error {
	if !status.Valid() {
		return shared.NewDomainError("VALIDATION_FAILED", "Unknown order status")
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// MarkPaid flags the order as paid
func (o *Order) MarkPaid(paid bool) {
	o.IsPaid = paid
	o.UpdatedAt = time.Now()
}

// RecalculateTotal recomputes total as the sum of line subtotals plus the
// delivery fee.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	o.Total = total.Add(o.DeliveryFee)
	o.UpdatedAt = time.Now()
}
