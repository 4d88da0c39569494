package shipping

import (
	"context"
	"errors"
	"testing"

	appshared "github.com/ecommerce/backend/internal/application/shared"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]shipping.Delivery, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]shipping.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, d *shipping.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockCarrier struct {
	mock.Mock
}

func (m *MockCarrier) Name() shipping.MethodName {
	return shipping.MethodShippo
}

func (m *MockCarrier) GetRates(ctx context.Context, req shipping.RateRequest) ([]shipping.Rate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.Rate), args.Error(1)
}

func (m *MockCarrier) GetRate(ctx context.Context, rateID string) (*shipping.Rate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Rate), args.Error(1)
}

func (m *MockCarrier) PurchaseLabel(ctx context.Context, rateID string) (*shipping.Label, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Label), args.Error(1)
}

var shopAddress = shipping.Address{
	Name: "Shop", Street1: "215 Clayton St", City: "San Francisco", State: "CA", Zip: "94117", Country: "US",
}

type shippingFixture struct {
	orders     *MockOrderRepository
	deliveries *MockDeliveryRepository
	carrier    *MockCarrier
	svc        *ShippingService
}

func newShippingFixture() *shippingFixture {
	f := &shippingFixture{
		orders:     new(MockOrderRepository),
		deliveries: new(MockDeliveryRepository),
		carrier:    new(MockCarrier),
	}
	scope := appshared.NewNoOpTransactionScope(appshared.Repositories{
		OrderRepo:    f.orders,
		DeliveryRepo: f.deliveries,
	})
	f.svc = NewShippingService(f.orders, f.deliveries, scope, f.carrier, shopAddress, zap.NewNop())
	return f
}

func newOrderInStatus(t *testing.T, userID uuid.UUID, statuses ...order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, []order.Line{{
		ProductID: uuid.New(), ProductName: "Shoe", Quantity: 1, UnitPrice: decimal.NewFromInt(10),
	}}, nil)
	require.NoError(t, err)
	for _, s := range statuses {
		require.NoError(t, o.TransitionTo(s))
	}
	o.ClearDomainEvents()
	return o
}

func validRatesRequest() RatesRequest {
	return RatesRequest{Name: "Jane", Street1: "1 Main St", City: "Austin", State: "TX", Zip: "73301", Country: "US"}
}

func TestShippingService_GetRates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("quotes with shop address and default parcel", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID)
		f.orders.On("FindByIDForUser", ctx, o.ID, userID).Return(o, nil)
		f.carrier.On("GetRates", ctx, mock.MatchedBy(func(req shipping.RateRequest) bool {
			return req.From == shopAddress && req.To.City == "Austin" && req.Parcel == shipping.DefaultParcel()
		})).Return([]shipping.Rate{{
			ID: "rate_1", Provider: "USPS", ServiceLevel: "Priority Mail",
			Amount: decimal.RequireFromString("7.45"), Currency: "USD", EstimatedDays: 2,
		}}, nil)

		rates, err := f.svc.GetRates(ctx, o.ID, userID, validRatesRequest())

		require.NoError(t, err)
		require.Len(t, rates, 1)
		assert.Equal(t, "rate_1", rates[0].RateID)
		assert.Equal(t, "USPS", rates[0].Provider)
		assert.Equal(t, "7.45", rates[0].Amount.StringFixed(2))
	})

	t.Run("incomplete address", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID)
		f.orders.On("FindByIDForUser", ctx, o.ID, userID).Return(o, nil)
		req := validRatesRequest()
		req.State = ""

		_, err := f.svc.GetRates(ctx, o.ID, userID, req)

		assert.ErrorIs(t, err, shipping.ErrAddressIncomplete)
		assert.Equal(t, "All address fields are required", err.Error())
		f.carrier.AssertNotCalled(t, "GetRates", mock.Anything, mock.Anything)
	})

	t.Run("carrier failure", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID)
		f.orders.On("FindByIDForUser", ctx, o.ID, userID).Return(o, nil)
		f.carrier.On("GetRates", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := f.svc.GetRates(ctx, o.ID, userID, validRatesRequest())

		assert.ErrorIs(t, err, shipping.ErrProvider)
	})
}

func TestShippingService_PurchaseLabel(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	rate := &shipping.Rate{ID: "rate_1", Amount: decimal.RequireFromString("7.45"), Currency: "USD"}

	t.Run("processing order moves to shipping", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID, order.StatusProcessing)
		f.orders.On("FindByIDForUser", ctx, o.ID, userID).Return(o, nil)
		f.orders.On("FindByIDForUpdate", ctx, o.ID).Return(o, nil)
		f.orders.On("Save", ctx, o).Return(nil)
		f.carrier.On("GetRate", ctx, "rate_1").Return(rate, nil)
		f.carrier.On("PurchaseLabel", ctx, "rate_1").Return(&shipping.Label{
			Status: shipping.LabelStatusSuccess, TrackingNumber: "9400", LabelURL: "https://label", TrackingURL: "https://track",
		}, nil)
		var saved *shipping.Delivery
		f.deliveries.On("Save", ctx, mock.AnythingOfType("*shipping.Delivery")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*shipping.Delivery) }).
			Return(nil)

		resp, err := f.svc.PurchaseLabel(ctx, o.ID, userID, PurchaseLabelRequest{RateID: "rate_1"})

		require.NoError(t, err)
		assert.Equal(t, "Label purchased successfully", resp.Message)
		assert.Equal(t, "9400", resp.TrackingNumber)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, order.StatusShipping, o.Status)
		require.NotNil(t, saved)
		assert.Equal(t, "7.45", saved.ShippingMethod.Price.StringFixed(2))
		f.orders.AssertExpectations(t)
	})

	t.Run("pending order keeps its status", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID)
		f.orders.On("FindByIDForUser", ctx, o.ID, userID).Return(o, nil)
		f.orders.On("FindByIDForUpdate", ctx, o.ID).Return(o, nil)
		f.carrier.On("GetRate", ctx, "rate_1").Return(rate, nil)
		f.carrier.On("PurchaseLabel", ctx, "rate_1").Return(&shipping.Label{Status: shipping.LabelStatusSuccess}, nil)
		f.deliveries.On("Save", ctx, mock.Anything).Return(nil)

		_, err := f.svc.PurchaseLabel(ctx, o.ID, userID, PurchaseLabelRequest{RateID: "rate_1"})

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("no rate selected", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID)
		f.orders.On("FindByIDForUser", ctx, o.ID, userID).Return(o, nil)

		_, err := f.svc.PurchaseLabel(ctx, o.ID, userID, PurchaseLabelRequest{})

		assert.ErrorIs(t, err, shipping.ErrNoRateSelected)
		assert.Equal(t, "No rate selected", err.Error())
	})

	t.Run("carrier rejects the label", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID, order.StatusProcessing)
		f.orders.On("FindByIDForUser", ctx, o.ID, userID).Return(o, nil)
		f.carrier.On("GetRate", ctx, "rate_1").Return(rate, nil)
		f.carrier.On("PurchaseLabel", ctx, "rate_1").Return(&shipping.Label{
			Status: "ERROR", Messages: []string{"Rate expired"},
		}, nil)

		_, err := f.svc.PurchaseLabel(ctx, o.ID, userID, PurchaseLabelRequest{RateID: "rate_1"})

		assert.ErrorIs(t, err, shipping.ErrLabelNotPurchased)
		assert.Equal(t, "Rate expired", err.Error())
		f.deliveries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestShippingService_UpdateDeliveryStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	method, err := shipping.NewShippingMethod(shipping.MethodShippo, decimal.NewFromInt(5))
	require.NoError(t, err)

	t.Run("delivered completes the order", func(t *testing.T) {
		f := newShippingFixture()
		o := newOrderInStatus(t, userID, order.StatusProcessing, order.StatusShipping)
		d, err := shipping.NewDelivery(o.ID, method, shipping.Label{Status: shipping.LabelStatusSuccess})
		require.NoError(t, err)

		f.deliveries.On("FindByID", ctx, d.ID).Return(d, nil)
		f.deliveries.On("Save", ctx, d).Return(nil)
		f.orders.On("FindByIDForUpdate", ctx, o.ID).Return(o, nil)
		f.orders.On("Save", ctx, o).Return(nil)

		resp, err := f.svc.UpdateDeliveryStatus(ctx, d.ID, UpdateDeliveryStatusRequest{Status: "delivered"})

		require.NoError(t, err)
		assert.Equal(t, "Delivery status updated successfully", resp.Message)
		assert.Equal(t, "delivered", resp.NewStatus)
		assert.Equal(t, order.StatusDelivered, o.Status)
	})

	t.Run("in transit leaves order alone", func(t *testing.T) {
		f := newShippingFixture()
		d, err := shipping.NewDelivery(uuid.New(), method, shipping.Label{Status: shipping.LabelStatusSuccess})
		require.NoError(t, err)

		f.deliveries.On("FindByID", ctx, d.ID).Return(d, nil)
		f.deliveries.On("Save", ctx, d).Return(nil)

		resp, err := f.svc.UpdateDeliveryStatus(ctx, d.ID, UpdateDeliveryStatusRequest{Status: "in_transit"})

		require.NoError(t, err)
		assert.Equal(t, "in_transit", resp.NewStatus)
		f.orders.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newShippingFixture()

		_, err := f.svc.UpdateDeliveryStatus(ctx, uuid.New(), UpdateDeliveryStatusRequest{Status: "lost"})

		assert.ErrorIs(t, err, shipping.ErrInvalidStatus)
		assert.Equal(t, "Invalid status", err.Error())
	})
}

func TestShippingService_GetDelivery(t *testing.T) {
	ctx := context.Background()
	f := newShippingFixture()
	method, err := shipping.NewShippingMethod(shipping.MethodShippo, decimal.RequireFromString("7.45"))
	require.NoError(t, err)
	d, err := shipping.NewDelivery(uuid.New(), method, shipping.Label{TrackingNumber: "9400"})
	require.NoError(t, err)

	f.deliveries.On("FindByID", ctx, d.ID).Return(d, nil)

	resp, err := f.svc.GetDelivery(ctx, d.ID)

	require.NoError(t, err)
	assert.Equal(t, "9400", resp.TrackingNumber)
	require.NotNil(t, resp.ShippingMethod)
	assert.Equal(t, "shippo", resp.ShippingMethod.Name)
}
