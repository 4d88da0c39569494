package payment

import (
	"context"
	"errors"
	"fmt"

	appshared "github.com/ecommerce/backend/internal/application/shared"
	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/payment"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	messagePaymentProcessed = "Payment processed successfully"
	messagePaymentUnapplied = "Payment captured, but the order is no longer awaiting payment"
)

// PaymentService charges orders through the configured gateways
type PaymentService struct {
	orderRepo      order.OrderRepository
	paymentRepo    payment.PaymentRepository
	userRepo       identity.UserRepository
	txScope        appshared.TransactionScope
	gateways       map[payment.Method]payment.Gateway
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService. Each gateway is registered
// under the method it reports.
func NewPaymentService(
	orderRepo order.OrderRepository,
	paymentRepo payment.PaymentRepository,
	userRepo identity.UserRepository,
	txScope appshared.TransactionScope,
	logger *zap.Logger,
	gateways ...payment.Gateway,
) *PaymentService {
	byMethod := make(map[payment.Method]payment.Gateway, len(gateways))
	for _, g := range gateways {
		byMethod[g.Method()] = g
	}
	return &PaymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		txScope:     txScope,
		gateways:    byMethod,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Process charges the caller's pending order.
// The gateway call happens outside any transaction. Its outcome is stored
// first and on its own, so a captured charge is kept even when the order
// cannot move to processing any more. Such a payment is flagged as unapplied.
func (s *PaymentService) Process(ctx context.Context, orderID, userID uuid.UUID, req ProcessPaymentRequest) (*ProcessPaymentResponse, error) {
	o, err := s.payableOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	method, err := payment.ParseMethod(req.PaymentPlatform)
	if err != nil {
		return nil, err
	}
	gateway, ok := s.gateways[method]
	if !ok {
		return nil, payment.ErrInvalidMethod
	}

	owner, err := s.userRepo.FindByID(ctx, o.UserID)
	if err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(o.ID, o.TotalPrice, method)
	if err != nil {
		return nil, err
	}

	result, chargeErr := gateway.Charge(ctx, payment.ChargeRequest{
		OrderID:      o.ID,
		PaymentID:    p.ID,
		Amount:       o.TotalMoney(),
		ReceiptEmail: owner.Email,
		Description:  fmt.Sprintf("Order %s", o.ID),
	})
	if chargeErr != nil {
		s.logger.Warn("Payment charge failed",
			zap.String("order_id", o.ID.String()),
			zap.String("method", string(method)),
			zap.Error(chargeErr))
		if err := p.Fail("", chargeErr.Error()); err != nil {
			return nil, err
		}
	} else if err := p.Complete(result.Reference, result.Status); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to record payment",
			zap.String("payment_id", p.ID.String()),
			zap.String("order_id", o.ID.String()),
			zap.String("gateway_reference", p.GatewayReference),
			zap.Error(err))
		return nil, err
	}

	message := messagePaymentProcessed
	var paid *order.Order
	if p.IsCompleted() {
		paid, err = s.applyPayment(ctx, p)
		if err != nil || paid == nil {
			s.logger.Error("Captured payment was not applied to its order",
				zap.String("payment_id", p.ID.String()),
				zap.String("order_id", o.ID.String()),
				zap.String("gateway_reference", p.GatewayReference),
				zap.Error(err))
			if err != nil {
				p.FlagUnapplied("")
			}
			message = messagePaymentUnapplied
		}
	}

	s.publish(ctx, p)
	if paid != nil {
		s.publish(ctx, paid)
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", p.ID.String()),
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(p.Status)))

	return &ProcessPaymentResponse{
		Message:   message,
		Status:    string(p.Status),
		PaymentID: p.ID,
	}, nil
}

// payableOrder reads the order under a row lock, so a status change that is
// being committed concurrently is seen before the card is charged
func (s *PaymentService) payableOrder(ctx context.Context, orderID, userID uuid.UUID) (*order.Order, error) {
	var o *order.Order
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		current, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !current.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}
		if !current.IsPayable() {
			return payment.ErrNotEligible
		}
		o = current
		return nil
	})
	return o, err
}

// applyPayment moves the order of a completed payment to processing. It
// returns nil and flags the payment when the order is no longer pending.
func (s *PaymentService) applyPayment(ctx context.Context, p *payment.Payment) (*order.Order, error) {
	var paid *order.Order
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		current, err := repos.Orders().FindByIDForUpdate(ctx, p.OrderID)
		if err != nil {
			return err
		}
		if !current.IsPayable() {
			p.FlagUnapplied(current.Status.String())
			return nil
		}
		if err := current.MarkPaid(); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, current); err != nil {
			return err
		}
		paid = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// GetByID returns a payment to the owner of its order or to an admin
func (s *PaymentService) GetByID(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, err
	}
	if err := s.authorizeOrder(ctx, p.OrderID, userID, isAdmin); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// ListByOrder returns every payment attempt made for an order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) ([]PaymentResponse, error) {
	if err := s.authorizeOrder(ctx, orderID, userID, isAdmin); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

func (s *PaymentService) authorizeOrder(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !isAdmin && !o.IsOwnedBy(userID) {
		return shared.ErrNotFound
	}
	return nil
}

func (s *PaymentService) publish(ctx context.Context, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, s.eventPublisher, aggregate); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}
