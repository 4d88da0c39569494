package shipping

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shipping"
)

var _ shipping.Carrier = UnconfiguredCarrier{}

// ErrCarrierUnconfigured is returned by every UnconfiguredCarrier call
var ErrCarrierUnconfigured = shipping.ErrProvider.WithMessage("Shipping provider is not configured")

// UnconfiguredCarrier stands in for Shippo when no API key is set, so the
// rest of the API stays usable in development
type UnconfiguredCarrier struct{}

func (UnconfiguredCarrier) Name() shipping.MethodName { return shipping.MethodShippo }

func (UnconfiguredCarrier) GetRates(context.Context, shipping.RateRequest) ([]shipping.Rate, error) {
	return nil, ErrCarrierUnconfigured
}

func (UnconfiguredCarrier) GetRate(context.Context, string) (*shipping.Rate, error) {
	return nil, ErrCarrierUnconfigured
}

func (UnconfiguredCarrier) PurchaseLabel(context.Context, string) (*shipping.Label, error) {
	return nil, ErrCarrierUnconfigured
}
