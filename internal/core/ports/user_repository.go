package ports

import (
	"context"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListByRole returns all users holding the given role (e.g. the
	// veterinarian directory).
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	SetBanned(ctx context.Context, id string, banned bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
