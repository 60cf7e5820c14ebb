package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// ProductService implements product listing use cases with a read-through
// cache on the public list.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.CatalogCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.CatalogCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, caller domain.CallerContext, in ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		SellerID:    caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("product_id", product.ID).Str("seller_id", caller.UserID).Msg("product created")
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List serves the public catalog, preferring the cache and falling back to
// the repository on a miss or cache error.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	if cached, ok, err := s.cache.GetProducts(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("product cache read failed")
	} else if ok {
		return cached, nil
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProducts(ctx, products); err != nil {
		s.logger.Warn().Err(err).Msg("product cache write failed")
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, caller domain.CallerContext, id string, in ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageListing(product.SellerID, caller) {
		return nil, domain.ErrForbidden
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.CategoryID = in.CategoryID
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, caller domain.CallerContext, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanManageListing(product.SellerID, caller) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("product_id", id).Str("actor_id", caller.UserID).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("product cache invalidation failed")
	}
}

var _ ports.ProductService = (*ProductService)(nil)
