package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// UserService implements account administration: listing, role changes,
// banning and deletion, plus the owner stats view.
type UserService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	pets     ports.PetRepository
	orders   ports.OrderRepository
	logger   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	products ports.ProductRepository,
	pets ports.PetRepository,
	orders ports.OrderRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{users: users, products: products, pets: pets, orders: orders, logger: logger}
}

func (s *UserService) List(ctx context.Context, caller domain.CallerContext) ([]*domain.User, error) {
	if !caller.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, caller domain.CallerContext, id string) (*domain.User, error) {
	if !caller.IsStaff() && caller.UserID != id {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

// ChangeRole sets a user's role. An admin may shuffle the non-privileged
// roles; anything touching the admin or owner level needs the owner.
func (s *UserService) ChangeRole(ctx context.Context, caller domain.CallerContext, id string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanChangeRole(target, role, caller) {
		return nil, domain.ErrForbidden
	}

	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", id).
		Str("from", string(target.Role)).
		Str("to", string(role)).
		Str("actor_id", caller.UserID).
		Msg("user role changed")

	target.Role = role
	return target, nil
}

// SetBanned flips the ban flag. A caller may never ban themself.
func (s *UserService) SetBanned(ctx context.Context, caller domain.CallerContext, id string, banned bool) (*domain.User, error) {
	if !caller.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if caller.UserID == id {
		return nil, domain.ErrSelfTargetedChange
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetBanned(ctx, id, banned); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", id).
		Bool("banned", banned).
		Str("actor_id", caller.UserID).
		Msg("user ban flag updated")

	target.Banned = banned
	return target, nil
}

// Delete removes an account. Owner only, and never your own.
func (s *UserService) Delete(ctx context.Context, caller domain.CallerContext, id string) error {
	if caller.Role != domain.RoleOwner {
		return domain.ErrForbidden
	}
	if caller.UserID == id {
		return domain.ErrSelfTargetedChange
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("actor_id", caller.UserID).Msg("user deleted")
	return nil
}

// Stats assembles the owner dashboard counts.
func (s *UserService) Stats(ctx context.Context, caller domain.CallerContext) (*ports.SystemStats, error) {
	if caller.Role != domain.RoleOwner {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	pets, err := s.pets.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.SystemStats{
		Users:          users,
		Products:       products,
		Pets:           pets,
		OrdersByStatus: orders,
	}, nil
}

var _ ports.UserService = (*UserService)(nil)
