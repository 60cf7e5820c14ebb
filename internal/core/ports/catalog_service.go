package ports

import (
	"context"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// ProductInput carries the mutable fields of a product listing.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  string
}

// ProductService defines product listing use cases. Reads are public;
// mutations require a seller (own listings) or staff.
type ProductService interface {
	Create(ctx context.Context, caller domain.CallerContext, in ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, caller domain.CallerContext, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, caller domain.CallerContext, id string) error
}

// PetInput carries the mutable fields of a pet listing.
type PetInput struct {
	Name        string
	Species     string
	Breed       string
	Age         int
	Price       float64
	Description string
}

// PetService defines pet listing use cases. A pet that is reserved by an
// open order cannot be deleted.
type PetService interface {
	Create(ctx context.Context, caller domain.CallerContext, in PetInput) (*domain.Pet, error)
	Get(ctx context.Context, id string) (*domain.Pet, error)
	List(ctx context.Context) ([]*domain.Pet, error)
	Update(ctx context.Context, caller domain.CallerContext, id string, in PetInput) (*domain.Pet, error)
	Delete(ctx context.Context, caller domain.CallerContext, id string) error
}

// CategoryInput carries the mutable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryService defines category management. Reads are public; mutations
// are staff-only (enforced at the route gate).
type CategoryService interface {
	Create(ctx context.Context, in CategoryInput) (*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// CatalogCache is a best-effort read-through cache for the public catalog
// lists. A miss returns ok == false; errors are advisory; callers fall
// back to the repository and log.
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]*domain.Product, bool, error)
	SetProducts(ctx context.Context, products []*domain.Product) error
	InvalidateProducts(ctx context.Context) error
	GetPets(ctx context.Context) ([]*domain.Pet, bool, error)
	SetPets(ctx context.Context, pets []*domain.Pet) error
	InvalidatePets(ctx context.Context) error
}
