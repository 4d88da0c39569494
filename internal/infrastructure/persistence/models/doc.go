// Package models contains GORM persistence models that map to database tables.
// Domain entities carry no ORM tags; every model has ToDomain and a
// ...ModelFromDomain constructor, and repositories only ever read and write models.
//
// Files follow the bounded contexts:
//   - base.go: shared ID, timestamp and version columns
//   - identity.go: users and profiles
//   - catalog.go: brands, categories, products, product images and reviews
//   - cart.go, order.go, payment.go, shipping.go
//   - outbox.go: domain events waiting to be dispatched
package models
