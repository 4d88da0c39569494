package order

import (
	"context"
	"errors"
	"fmt"
	"sort"

	appshared "github.com/ecommerce/backend/internal/application/shared"
	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo      order.OrderRepository
	txScope        appshared.TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, txScope appshared.TransactionScope, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout turns the user's cart into a pending order.
// In one transaction it locks the cart, locks and decrements stock, snapshots
// current prices into the order items, saves the order and empties the cart.
// A second checkout of the same cart waits for the first and then finds it empty.
func (s *OrderService) Checkout(ctx context.Context, userID, cartID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	address, err := req.ShippingAddress.toAddress()
	if err != nil {
		return nil, err
	}

	var (
		placed   *order.Order
		products []*catalog.Product
	)
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		c, err := repos.Carts().FindByIDForUpdate(ctx, cartID)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return shared.ErrNotFound.WithMessage("Cart not found")
		}
		if c.IsEmpty() {
			return cart.ErrEmptyCart
		}

		// Lock rows in a stable order so concurrent checkouts cannot deadlock
		items := append([]cart.CartItem(nil), c.Items...)
		sort.Slice(items, func(i, j int) bool {
			return items[i].ProductID.String() < items[j].ProductID.String()
		})

		lines := make([]order.Line, 0, len(items))
		products = products[:0]
		for _, item := range items {
			product, err := repos.Products().FindByIDForUpdate(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("INVALID_PRODUCT", "A product in your cart is no longer available")
				}
				return err
			}
			if err := product.DecreaseStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
			products = append(products, product)
			lines = append(lines, order.Line{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
			})
		}

		placed, err = order.NewOrder(userID, lines, address)
		if err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, placed); err != nil {
			return err
		}

		c.Clear()
		return repos.Carts().Save(ctx, c)
	})
	if err != nil {
		s.logger.Warn("Checkout failed",
			zap.String("user_id", userID.String()),
			zap.String("cart_id", cartID.String()),
			zap.Error(err))
		return nil, err
	}

	s.publish(ctx, placed)
	for _, p := range products {
		s.publish(ctx, p)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", placed.TotalPrice.StringFixed(2)))

	resp := ToOrderResponse(placed)
	return &resp, nil
}

// GetForUser returns an order placed by userID; other users' orders are not found
func (s *OrderService) GetForUser(ctx context.Context, id, userID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByID returns any order
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns all orders, optionally restricted to one status
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// ListForUser returns the orders placed by userID
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// UpdateStatus moves an order to a new status. Cancelling returns the
// ordered quantities to stock in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Invalid order status: %s", req.Status))
	}

	var (
		updated  *order.Order
		restored []*catalog.Product
	)
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		o, err := repos.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := o.TransitionTo(target); err != nil {
			return err
		}

		if target == order.StatusCancelled {
			for _, item := range o.Items {
				product, err := repos.Products().FindByIDForUpdate(ctx, item.ProductID)
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				if err != nil {
					return err
				}
				if err := product.IncreaseStock(item.Quantity); err != nil {
					return err
				}
				if err := repos.Products().Save(ctx, product); err != nil {
					return err
				}
				restored = append(restored, product)
			}
		}

		updated = o
		return repos.Orders().Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated)
	for _, p := range restored {
		s.publish(ctx, p)
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", updated.ID.String()),
		zap.String("status", updated.Status.String()))

	resp := ToOrderResponse(updated)
	return &resp, nil
}

func (s *OrderService) publish(ctx context.Context, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, s.eventPublisher, aggregate); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		domainFilter.Filters[order.FilterStatus] = filter.Status
	}
	return domainFilter
}
