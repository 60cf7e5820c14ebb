package ports

import (
	"context"
	"time"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindByIdempotencyKey looks up the client's previous order for a key.
	// Keys are scoped per client, so one client can never replay another's.
	FindByIdempotencyKey(ctx context.Context, key, clientID string) (*domain.Order, error)
	// List returns all orders, newest first.
	List(ctx context.Context) ([]*domain.Order, error)
	// ListByClient returns the orders placed by a client, newest first.
	ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error)
	// ListBySeller returns orders containing at least one of the seller's
	// listings, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Order, error)
	// UpdateStatus sets the new status and appends a history entry, but only
	// if the order still holds the status the caller validated against.
	// Returns ErrInvalidTransition when a concurrent writer got there first.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, ts time.Time, actorID string) error
	// Delete removes the order only if it still holds the given status.
	// Returns ErrOrderConflict when a concurrent writer changed it.
	Delete(ctx context.Context, id string, current domain.OrderStatus) error
	// CountByStatus returns order counts keyed by status.
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)
}
