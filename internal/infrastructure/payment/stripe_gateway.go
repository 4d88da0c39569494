// Package payment holds the payment provider adapters.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"

	"github.com/ecommerce/backend/internal/domain/payment"
	"github.com/ecommerce/backend/internal/infrastructure/config"
)

var _ payment.Gateway = (*StripeGateway)(nil)

const defaultCurrency = "usd"

// StripeGateway charges orders by creating Stripe PaymentIntents
type StripeGateway struct {
	client   paymentintent.Client
	currency string
	logger   *zap.Logger
}

// StripeGatewayOption configures a StripeGateway
type StripeGatewayOption func(*StripeGateway)

// WithStripeBackend replaces the HTTP backend, e.g. with stripe-mock or a test double
func WithStripeBackend(b stripe.Backend) StripeGatewayOption {
	return func(g *StripeGateway) {
		g.client.B = b
	}
}

// NewStripeGateway creates a gateway from the stripe config section.
// A BackendURL points the client at a stripe-mock server.
func NewStripeGateway(cfg config.StripeConfig, logger *zap.Logger, opts ...StripeGatewayOption) (*StripeGateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe: secret key is required")
	}
	if !strings.HasPrefix(cfg.SecretKey, "sk_") && !strings.HasPrefix(cfg.SecretKey, "rk_") {
		return nil, errors.New("stripe: secret key must start with sk_ or rk_")
	}

	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	var backend stripe.Backend
	if cfg.BackendURL != "" {
		backend = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(cfg.BackendURL),
		})
	} else {
		backend = stripe.GetBackend(stripe.APIBackend)
	}

	g := &StripeGateway{
		client:   paymentintent.Client{B: backend, Key: cfg.SecretKey},
		currency: currency,
		logger:   logger.Named("stripe"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Method implements payment.Gateway
func (g *StripeGateway) Method() payment.Method {
	return payment.MethodStripe
}

// Charge creates a card PaymentIntent for the order total in minor units.
// The payment ID is the idempotency key, so a retried call cannot charge twice.
func (g *StripeGateway) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	amount := req.Amount.MinorUnits()
	if amount <= 0 {
		return nil, fmt.Errorf("stripe: amount must be positive, got %d", amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.PaymentID.String())
	params.AddMetadata("order_id", req.OrderID.String())
	params.AddMetadata("payment_id", req.PaymentID.String())

	intent, err := g.client.New(params)
	if err != nil {
		g.logger.Warn("PaymentIntent creation failed",
			zap.String("order_id", req.OrderID.String()),
			zap.Error(err))
		return nil, translateStripeError(err)
	}

	g.logger.Info("PaymentIntent created",
		zap.String("order_id", req.OrderID.String()),
		zap.String("payment_intent", intent.ID),
		zap.String("status", string(intent.Status)))

	return &payment.ChargeResult{
		Reference: intent.ID,
		Status:    string(intent.Status),
	}, nil
}

// translateStripeError wraps card errors in payment.ErrGatewayDeclined
func translateStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		msg := stripeErr.Msg
		if msg == "" {
			msg = string(stripeErr.Code)
		}
		if stripeErr.Type == stripe.ErrorTypeCard {
			return fmt.Errorf("%w: %s", payment.ErrGatewayDeclined, msg)
		}
		return fmt.Errorf("stripe: %s", msg)
	}
	return fmt.Errorf("stripe: %w", err)
}
