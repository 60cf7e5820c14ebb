package ports

import (
	"context"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// PetRepository defines persistence operations for pets.
//
// Reserve is a conditional update filtered on status == available, so of two
// concurrent attempts to reserve the same pet exactly one can match.
type PetRepository interface {
	Create(ctx context.Context, p *domain.Pet) error
	FindByID(ctx context.Context, id string) (*domain.Pet, error)
	List(ctx context.Context) ([]*domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) error
	Delete(ctx context.Context, id string) error
	// Reserve flips the pet from available to reserved. Returns
	// domain.ErrPetUnavailable when the pet exists but is not available
	// and domain.ErrPetNotFound when it does not exist.
	Reserve(ctx context.Context, id string) error
	// Release reverts a reserved pet to available and clears its owner.
	Release(ctx context.Context, id string) error
	// MarkSold sets the pet to sold with the given owner.
	MarkSold(ctx context.Context, id string, ownerID string) error
	Count(ctx context.Context) (int64, error)
}
