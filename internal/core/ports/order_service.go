package ports

import (
	"context"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// ProductOrderItem is a requested product line: which product and how many.
type ProductOrderItem struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries all data needed to place a new order.
type CreateOrderInput struct {
	Products       []ProductOrderItem
	PetIDs         []string
	IdempotencyKey string
}

// OrderService defines the order lifecycle use cases. Every operation takes
// the caller context explicitly; authorization failures surface as
// domain.ErrForbidden.
type OrderService interface {
	// Create places an order for the calling client: validates the lines,
	// computes the total, decrements stock and reserves pets atomically
	// with the order insert. When an idempotency key matches an existing
	// order, that order is returned without side effects.
	Create(ctx context.Context, caller domain.CallerContext, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, caller domain.CallerContext, orderID string) (*domain.Order, error)
	// List returns the orders visible to the caller: own orders for a
	// client, orders containing own listings for a seller, everything for
	// staff.
	List(ctx context.Context, caller domain.CallerContext) ([]*domain.Order, error)
	// Transition applies a status change with its inventory side effects,
	// atomically. Cancelling releases reserved pets and restores stock;
	// delivering marks pets sold and records product buyers.
	Transition(ctx context.Context, caller domain.CallerContext, orderID string, next domain.OrderStatus) (*domain.Order, error)
	// Delete removes an order (staff only), releasing reserved inventory
	// first when the order never reached a terminal state.
	Delete(ctx context.Context, caller domain.CallerContext, orderID string) error
}
