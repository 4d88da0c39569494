package shipping

import (
	"context"
	"errors"
	"strings"

	appshared "github.com/ecommerce/backend/internal/application/shared"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	messageLabelPurchased = "Label purchased successfully"
	messageStatusUpdated  = "Delivery status updated successfully"
)

// ShippingService quotes rates, buys labels and tracks deliveries
type ShippingService struct {
	orderRepo      order.OrderRepository
	deliveryRepo   shipping.DeliveryRepository
	txScope        appshared.TransactionScope
	carrier        shipping.Carrier
	sender         shipping.Address
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewShippingService creates a new ShippingService. sender is the shop's
// address every parcel ships from.
func NewShippingService(
	orderRepo order.OrderRepository,
	deliveryRepo shipping.DeliveryRepository,
	txScope appshared.TransactionScope,
	carrier shipping.Carrier,
	sender shipping.Address,
	logger *zap.Logger,
) *ShippingService {
	return &ShippingService{
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
		txScope:      txScope,
		carrier:      carrier,
		sender:       sender,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ShippingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetRates quotes the carrier's rates for shipping the caller's order to the given address
func (s *ShippingService) GetRates(ctx context.Context, orderID, userID uuid.UUID, req RatesRequest) ([]RateResponse, error) {
	if _, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID); err != nil {
		return nil, err
	}

	to := req.toAddress()
	if err := to.Validate(); err != nil {
		return nil, err
	}

	rates, err := s.carrier.GetRates(ctx, shipping.RateRequest{
		From:   s.sender,
		To:     to,
		Parcel: shipping.DefaultParcel(),
	})
	if err != nil {
		s.logger.Error("Carrier rate request failed",
			zap.String("order_id", orderID.String()),
			zap.String("carrier", string(s.carrier.Name())),
			zap.Error(err))
		return nil, providerError(err)
	}

	responses := make([]RateResponse, len(rates))
	for i, r := range rates {
		responses[i] = toRateResponse(r)
	}
	return responses, nil
}

// PurchaseLabel buys the label for a quoted rate and records the delivery.
// A processing order moves to shipping.
func (s *ShippingService) PurchaseLabel(ctx context.Context, orderID, userID uuid.UUID, req PurchaseLabelRequest) (*PurchaseLabelResponse, error) {
	if _, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID); err != nil {
		return nil, err
	}

	rateID := strings.TrimSpace(req.RateID)
	if rateID == "" {
		return nil, shipping.ErrNoRateSelected
	}

	rate, err := s.carrier.GetRate(ctx, rateID)
	if err != nil {
		return nil, providerError(err)
	}
	label, err := s.carrier.PurchaseLabel(ctx, rateID)
	if err != nil {
		return nil, providerError(err)
	}
	if !label.Succeeded() {
		s.logger.Warn("Label purchase rejected",
			zap.String("order_id", orderID.String()),
			zap.String("rate_id", rateID),
			zap.Strings("messages", label.Messages))
		if len(label.Messages) > 0 {
			return nil, shipping.ErrLabelNotPurchased.WithMessage(strings.Join(label.Messages, "; "))
		}
		return nil, shipping.ErrLabelNotPurchased
	}

	method, err := shipping.NewShippingMethod(s.carrier.Name(), rate.Amount)
	if err != nil {
		return nil, err
	}
	delivery, err := shipping.NewDelivery(orderID, method, *label)
	if err != nil {
		return nil, err
	}

	var shipped *order.Order
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if err := repos.Deliveries().Save(ctx, delivery); err != nil {
			return err
		}
		o, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.MarkShipping() {
			return nil
		}
		shipped = o
		return repos.Orders().Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, delivery)
	if shipped != nil {
		s.publish(ctx, shipped)
	}

	s.logger.Info("Shipping label purchased",
		zap.String("order_id", orderID.String()),
		zap.String("delivery_id", delivery.ID.String()),
		zap.String("tracking_number", delivery.TrackingNumber))

	return &PurchaseLabelResponse{
		Message:        messageLabelPurchased,
		DeliveryID:     delivery.ID,
		TrackingNumber: delivery.TrackingNumber,
		LabelURL:       delivery.LabelURL,
		TrackingURL:    delivery.TrackingURL,
		Status:         string(delivery.Status),
	}, nil
}

// UpdateDeliveryStatus sets the tracking status. Delivering a parcel completes its order.
func (s *ShippingService) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, req UpdateDeliveryStatusRequest) (*UpdateDeliveryStatusResponse, error) {
	status := shipping.DeliveryStatus(strings.TrimSpace(req.Status))
	if !status.IsValid() {
		return nil, shipping.ErrInvalidStatus
	}

	var (
		delivery  *shipping.Delivery
		completed *order.Order
	)
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		d, err := repos.Deliveries().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := d.UpdateStatus(status); err != nil {
			return err
		}
		if err := repos.Deliveries().Save(ctx, d); err != nil {
			return err
		}
		delivery = d

		if !d.IsDelivered() {
			return nil
		}
		o, err := repos.Orders().FindByIDForUpdate(ctx, d.OrderID)
		if err != nil {
			return err
		}
		if !o.MarkDelivered() {
			return nil
		}
		completed = o
		return repos.Orders().Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, delivery)
	if completed != nil {
		s.publish(ctx, completed)
	}

	return &UpdateDeliveryStatusResponse{
		Message:   messageStatusUpdated,
		NewStatus: string(delivery.Status),
	}, nil
}

// GetDelivery returns a delivery with its shipping method
func (s *ShippingService) GetDelivery(ctx context.Context, id uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDeliveryResponse(d)
	return &resp, nil
}

// ListByOrder returns the deliveries of the caller's order
func (s *ShippingService) ListByOrder(ctx context.Context, orderID, userID uuid.UUID) ([]DeliveryResponse, error) {
	if _, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID); err != nil {
		return nil, err
	}
	deliveries, err := s.deliveryRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]DeliveryResponse, len(deliveries))
	for i := range deliveries {
		responses[i] = ToDeliveryResponse(&deliveries[i])
	}
	return responses, nil
}

func (s *ShippingService) publish(ctx context.Context, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, s.eventPublisher, aggregate); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}

// providerError keeps domain errors raised by the carrier adapter and maps
// everything else to SHIPPING_PROVIDER_ERROR.
func providerError(err error) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return shipping.ErrProvider.WithMessage(err.Error())
}
