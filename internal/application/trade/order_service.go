package trade

import (
	"context"
	"errors"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/craftbase/backend/internal/domain/tenant"
	"github.com/craftbase/backend/internal/domain/trade"
	"github.com/craftbase/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order-related business operations. Order creation
// and deletion reconcile product stock by the exact line deltas, inside
// the same transaction as the order write.
type OrderService struct {
	factory tenant.Factory
}

// NewOrderService creates a new OrderService
func NewOrderService(factory tenant.Factory) *OrderService {
	return &OrderService{factory: factory}
}

// Create creates an order and decrements each product's stock by its line
// quantity. The whole operation is atomic: a failing line leaves no order
// and no stock change behind. Stock may go negative; the business tracks
// backorders rather than blocking sales.
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		if _, err := repos.Contacts.FindByID(ctx, req.ContactID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrReferenceNotFound
			}
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(req.Items))
		for _, item := range req.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := repos.Products.FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		productByID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			productByID[products[i].ID] = &products[i]
		}

		order := trade.NewOrder(tenantID, req.ContactID)
		order.Notes = req.Notes
		for _, item := range req.Items {
			product, ok := productByID[item.ProductID]
			if !ok {
				return shared.ErrReferenceNotFound
			}
			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			if _, err := order.AddItem(item.ProductID, item.Quantity, unitPrice); err != nil {
				return err
			}
		}
		if req.DeliveryFee != nil {
			if err := order.SetDeliveryFee(*req.DeliveryFee); err != nil {
				return err
			}
		}

		if err := repos.Orders.Save(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := repos.Products.AdjustStock(ctx, item.ProductID, item.Quantity.Neg()); err != nil {
				return err
			}
		}

		logger.L(ctx).Info("order created",
			zap.String("order_id", order.ID.String()),
			zap.String("contact_id", order.ContactID.String()),
			zap.Int("items", len(order.Items)),
			zap.String("total", order.Total.String()),
		)

		resp := ToOrderResponse(order)
		response = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	order, err := repos.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves a paginated list of orders, newest first
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	orders, err := repos.Orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := repos.Orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByContact retrieves a contact's orders, newest first
func (s *OrderService) ListByContact(ctx context.Context, tenantID, contactID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	orders, err := repos.Orders.FindByContact(ctx, contactID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}
	return items, nil
}

// Update applies a partial update to an order's status, fee, payment flag
// or notes. Item lines never change here, so stock is untouched.
func (s *OrderService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	repos, err := s.factory.Bind(tenantID)
	if err != nil {
		return nil, err
	}

	order, err := repos.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := order.ChangeStatus(trade.OrderStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.DeliveryFee != nil {
		if err := order.SetDeliveryFee(*req.DeliveryFee); err != nil {
			return nil, err
		}
	}
	if req.IsPaid != nil {
		order.MarkPaid(*req.IsPaid)
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := repos.Orders.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order and restores exactly the stock it deducted,
// item by item, in one transaction. Stock adjustments made between
// creation and deletion are preserved because restoration is delta-based.
func (s *OrderService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.factory.Transaction(ctx, tenantID, func(repos *tenant.Repositories) error {
		items, err := repos.Orders.ListItems(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Orders.Delete(ctx, id); err != nil {
			return err
		}
		for _, item := range items {
			if err := repos.Products.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				// The product may have been deleted since the order was
				// placed; nothing is left to restore then.
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return err
			}
		}

		logger.L(ctx).Info("order deleted, stock restored",
			zap.String("order_id", id.String()),
			zap.Int("items", len(items)),
		)
		return nil
	})
}
