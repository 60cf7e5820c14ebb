package ports

import (
	"context"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
//
// ReserveStock and ReleaseStock are conditional single-document updates:
// ReserveStock only succeeds when the current stock covers the quantity, so
// the availability check and the decrement are one atomic write and two
// concurrent reservations can never drive stock negative.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// ReserveStock decrements stock by qty iff stock >= qty. Returns
	// domain.ErrInsufficientStock when the condition fails and
	// domain.ErrProductNotFound when the product does not exist.
	ReserveStock(ctx context.Context, id string, qty int) error
	// ReleaseStock restores qty units and clears the owner reference.
	ReleaseStock(ctx context.Context, id string, qty int) error
	// SetOwner records the buyer after a delivered order.
	SetOwner(ctx context.Context, id string, ownerID string) error
	Count(ctx context.Context) (int64, error)
}
