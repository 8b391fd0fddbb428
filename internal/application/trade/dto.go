package trade

import (
	"time"

	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one product line of a create-order request. UnitPrice
// is optional; when omitted the product's current price is captured.
type OrderItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	ContactID   uuid.UUID          `json:"contact_id" binding:"required"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryFee *decimal.Decimal   `json:"delivery_fee"`
	Notes       string             `json:"notes"`
}

// UpdateOrderRequest represents a partial update of an order. Item lines
// are immutable after creation; replace the order to change them.
type UpdateOrderRequest struct {
	Status      *string          `json:"status" binding:"omitempty,oneof=pending confirmed preparing ready delivered cancelled"`
	DeliveryFee *decimal.Decimal `json:"delivery_fee"`
	IsPaid      *bool            `json:"is_paid"`
	Notes       *string          `json:"notes"`
}

// OrderItemResponse is one product line in an order response
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	ContactID   uuid.UUID           `json:"contact_id"`
	Status      string              `json:"status"`
	Total       decimal.Decimal     `json:"total"`
	DeliveryFee decimal.Decimal     `json:"delivery_fee"`
	IsPaid      bool                `json:"is_paid"`
	Notes       string              `json:"notes"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToOrderResponse maps a domain order to its response form
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = OrderItemResponse{
			ID:        o.Items[i].ID,
			ProductID: o.Items[i].ProductID,
			Quantity:  o.Items[i].Quantity,
			UnitPrice: o.Items[i].UnitPrice,
			Subtotal:  o.Items[i].Subtotal(),
		}
	}
	return OrderResponse{
		ID:          o.ID,
		ContactID:   o.ContactID,
		Status:      string(o.Status),
		Total:       o.Total,
		DeliveryFee: o.DeliveryFee,
		IsPaid:      o.IsPaid,
		Notes:       o.Notes,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
