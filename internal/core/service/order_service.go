package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// OrderService implements the order lifecycle: creation with atomic
// inventory reservation, status transitions with their stock and ownership
// side effects, and deletion with inventory release.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	pets     ports.PetRepository
	tx       ports.TxRunner
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	pets ports.PetRepository,
	tx ports.TxRunner,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, products: products, pets: pets, tx: tx, logger: logger}
}

// Create places an order for the calling client. Stock decrements and pet
// reservations happen in the same transaction as the order insert, so a
// failing line item rolls back everything reserved before it. If an
// idempotency key matches a previous order, that order is replayed.
func (s *OrderService) Create(ctx context.Context, caller domain.CallerContext, in ports.CreateOrderInput) (*domain.Order, error) {
	if caller.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if len(in.Products) == 0 && len(in.PetIDs) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, item := range in.Products {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w (product %s)", domain.ErrInvalidQuantity, item.ProductID)
		}
	}

	if in.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, in.IdempotencyKey, caller.UserID)
		if err == nil && existing != nil {
			s.logger.Info().
				Str("idempotency_key", in.IdempotencyKey).
				Str("order_id", existing.ID).
				Msg("idempotent replay")
			return existing, nil
		}
	}

	var created *domain.Order
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		order := &domain.Order{
			ID:             uuid.NewString(),
			ClientID:       caller.UserID,
			Status:         domain.StatusPending,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      now,
			StatusHistory: []domain.OrderStatusEntry{
				{Status: domain.StatusPending, Timestamp: now, ActorID: caller.UserID},
			},
		}

		var total float64
		sellers := make(map[string]struct{})

		for _, item := range in.Products {
			product, err := s.products.FindByID(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if err := s.products.ReserveStock(txCtx, product.ID, item.Quantity); err != nil {
				return err
			}
			order.Products = append(order.Products, domain.ProductLine{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
			})
			total += product.Price * float64(item.Quantity)
			sellers[product.SellerID] = struct{}{}
		}

		for _, petID := range in.PetIDs {
			pet, err := s.pets.FindByID(txCtx, petID)
			if err != nil {
				return err
			}
			if err := s.pets.Reserve(txCtx, pet.ID); err != nil {
				return err
			}
			order.Pets = append(order.Pets, domain.PetLine{
				PetID: pet.ID,
				Name:  pet.Name,
				Price: pet.Price,
			})
			total += pet.Price
			sellers[pet.SellerID] = struct{}{}
		}

		order.TotalAmount = total
		for sellerID := range sellers {
			order.SellerIDs = append(order.SellerIDs, sellerID)
		}

		if err := s.orders.Create(txCtx, order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", caller.UserID).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().
		Str("order_id", created.ID).
		Str("client_id", caller.UserID).
		Float64("total_amount", created.TotalAmount).
		Msg("order created")

	return created, nil
}

// Get retrieves a single order, visible to staff, the client who placed it,
// or a seller with a line item in it.
func (s *OrderService) Get(ctx context.Context, caller domain.CallerContext, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessOrder(order, caller) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// List returns the orders visible to the caller.
func (s *OrderService) List(ctx context.Context, caller domain.CallerContext) ([]*domain.Order, error) {
	switch {
	case caller.IsStaff():
		return s.orders.List(ctx)
	case caller.Role == domain.RoleClient:
		return s.orders.ListByClient(ctx, caller.UserID)
	case caller.Role == domain.RoleSeller:
		return s.orders.ListBySeller(ctx, caller.UserID)
	}
	return nil, domain.ErrForbidden
}

// Transition moves the order to next and applies the inventory side effects
// in the same transaction as the status write. The order is read, authorized,
// and validated inside the transaction, and the status write is conditioned
// on the status that validation saw, so two racing transitions from the same
// state cannot both commit.
func (s *OrderService) Transition(ctx context.Context, caller domain.CallerContext, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, next)
	}

	now := time.Now().UTC()
	var order *domain.Order
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		if !domain.CanTransitionOrder(order, next, caller) {
			return domain.ErrForbidden
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
		}

		// The conditional write goes first: if the status moved since the
		// read, nothing below runs.
		if err := s.orders.UpdateStatus(txCtx, order.ID, order.Status, next, now, caller.UserID); err != nil {
			return err
		}

		switch next {
		case domain.StatusCancelled:
			return s.releaseInventory(txCtx, order)
		case domain.StatusDelivered:
			for _, line := range order.Pets {
				if err := s.pets.MarkSold(txCtx, line.PetID, order.ClientID); err != nil {
					return err
				}
			}
			for _, line := range order.Products {
				if err := s.products.SetOwner(txCtx, line.ProductID, order.ClientID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("order_id", orderID).
			Str("to", string(next)).
			Msg("order transition failed")
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Str("actor_id", caller.UserID).
		Msg("order status updated")

	order.Status = next
	order.StatusHistory = append(order.StatusHistory, domain.OrderStatusEntry{
		Status:    next,
		Timestamp: now,
		ActorID:   caller.UserID,
	})
	return order, nil
}

// Delete removes an order. A non-terminal order has its reserved inventory
// released in the same transaction as the removal; a delivered order keeps
// the sale final and a cancelled one was already released. The removal is
// conditioned on the status the release decision was based on.
func (s *OrderService) Delete(ctx context.Context, caller domain.CallerContext, orderID string) error {
	if !caller.IsStaff() {
		return domain.ErrForbidden
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		order, err := s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := s.orders.Delete(txCtx, order.ID, order.Status); err != nil {
			return err
		}
		if !order.Status.IsTerminal() {
			return s.releaseInventory(txCtx, order)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("order deletion failed")
		return err
	}

	s.logger.Info().Str("order_id", orderID).Str("actor_id", caller.UserID).Msg("order deleted")
	return nil
}

// releaseInventory reverts every reservation the order holds: reserved pets
// become available again with their owner cleared, product stock is
// restored.
func (s *OrderService) releaseInventory(ctx context.Context, order *domain.Order) error {
	for _, line := range order.Pets {
		if err := s.pets.Release(ctx, line.PetID); err != nil {
			return err
		}
	}
	for _, line := range order.Products {
		if err := s.products.ReleaseStock(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.OrderService = (*OrderService)(nil)
