// Package shared holds application-layer contracts used by several services.
package shared

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/payment"
	"github.com/ecommerce/backend/internal/domain/shipping"
)

// TransactionScope runs a unit of work atomically.
// If fn returns an error the transaction is rolled back, otherwise it is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to repositories bound to the running transaction.
type TransactionalRepositories interface {
	Users() identity.UserRepository
	Profiles() identity.ProfileRepository
	Products() catalog.ProductRepository
	Carts() cart.CartRepository
	Orders() order.OrderRepository
	Payments() payment.PaymentRepository
	Deliveries() shipping.DeliveryRepository
}

// Repositories is a plain set of repositories, used by NoOpTransactionScope
type Repositories struct {
	UserRepo     identity.UserRepository
	ProfileRepo  identity.ProfileRepository
	ProductRepo  catalog.ProductRepository
	CartRepo     cart.CartRepository
	OrderRepo    order.OrderRepository
	PaymentRepo  payment.PaymentRepository
	DeliveryRepo shipping.DeliveryRepository
}

func (r Repositories) Users() identity.UserRepository { return r.UserRepo }
func (r Repositories) Profiles() identity.ProfileRepository { return r.ProfileRepo }
func (r Repositories) Products() catalog.ProductRepository { return r.ProductRepo }
func (r Repositories) Carts() cart.CartRepository { return r.CartRepo }
func (r Repositories) Orders() order.OrderRepository { return r.OrderRepo }
func (r Repositories) Payments() payment.PaymentRepository { return r.PaymentRepo }
func (r Repositories) Deliveries() shipping.DeliveryRepository { return r.DeliveryRepo }

// NoOpTransactionScope runs the function against the given repositories without a transaction.
// This is useful for testing.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.repos)
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = Repositories{}
)
