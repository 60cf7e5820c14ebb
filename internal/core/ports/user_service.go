package ports

import (
	"context"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// SystemStats is the owner dashboard summary.
type SystemStats struct {
	Users          int64                        `json:"users"`
	Products       int64                        `json:"products"`
	Pets           int64                        `json:"pets"`
	OrdersByStatus map[domain.OrderStatus]int64 `json:"orders_by_status"`
}

// UserService defines account administration use cases.
type UserService interface {
	List(ctx context.Context, caller domain.CallerContext) ([]*domain.User, error)
	Get(ctx context.Context, caller domain.CallerContext, id string) (*domain.User, error)
	// ChangeRole sets a user's role. Changes touching the admin or owner
	// level require the owner role.
	ChangeRole(ctx context.Context, caller domain.CallerContext, id string, role domain.Role) (*domain.User, error)
	// SetBanned flips the ban flag. Callers may never ban themselves.
	SetBanned(ctx context.Context, caller domain.CallerContext, id string, banned bool) (*domain.User, error)
	// Delete removes an account (owner only, never your own).
	Delete(ctx context.Context, caller domain.CallerContext, id string) error
	Stats(ctx context.Context, caller domain.CallerContext) (*SystemStats, error)
}
