package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// PetService implements pet listing use cases. Pets referenced by an open
// order (reserved) cannot be removed.
type PetService struct {
	repo   ports.PetRepository
	cache  ports.CatalogCache
	logger zerolog.Logger
}

func NewPetService(repo ports.PetRepository, cache ports.CatalogCache, logger zerolog.Logger) *PetService {
	return &PetService{repo: repo, cache: cache, logger: logger}
}

func (s *PetService) Create(ctx context.Context, caller domain.CallerContext, in ports.PetInput) (*domain.Pet, error) {
	now := time.Now().UTC()
	pet := &domain.Pet{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Species:     in.Species,
		Breed:       in.Breed,
		Age:         in.Age,
		Price:       in.Price,
		Description: in.Description,
		Status:      domain.PetAvailable,
		SellerID:    caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("pet_id", pet.ID).Str("seller_id", caller.UserID).Msg("pet created")
	return pet, nil
}

func (s *PetService) Get(ctx context.Context, id string) (*domain.Pet, error) {
	return s.repo.FindByID(ctx, id)
}

// List serves the public catalog, preferring the cache and falling back to
// the repository on a miss or cache error.
func (s *PetService) List(ctx context.Context) ([]*domain.Pet, error) {
	if cached, ok, err := s.cache.GetPets(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("pet cache read failed")
	} else if ok {
		return cached, nil
	}

	pets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetPets(ctx, pets); err != nil {
		s.logger.Warn().Err(err).Msg("pet cache write failed")
	}
	return pets, nil
}

func (s *PetService) Update(ctx context.Context, caller domain.CallerContext, id string, in ports.PetInput) (*domain.Pet, error) {
	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageListing(pet.SellerID, caller) {
		return nil, domain.ErrForbidden
	}

	pet.Name = in.Name
	pet.Species = in.Species
	pet.Breed = in.Breed
	pet.Age = in.Age
	pet.Price = in.Price
	pet.Description = in.Description
	pet.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return pet, nil
}

// Delete removes a pet listing. Reserved pets are refused so an open order
// never points at a vanished pet.
func (s *PetService) Delete(ctx context.Context, caller domain.CallerContext, id string) error {
	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanManageListing(pet.SellerID, caller) {
		return domain.ErrForbidden
	}
	if pet.Status == domain.PetReserved {
		return domain.ErrPetUnavailable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("pet_id", id).Str("actor_id", caller.UserID).Msg("pet deleted")
	return nil
}

func (s *PetService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidatePets(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("pet cache invalidation failed")
	}
}

var _ ports.PetService = (*PetService)(nil)
