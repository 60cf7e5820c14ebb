package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// stubCatalogCache records lookups and invalidations in memory.
type stubCatalogCache struct {
	products    []*domain.Product
	pets        []*domain.Pet
	hasProducts bool
	hasPets     bool
	err         error
}

func (c *stubCatalogCache) GetProducts(_ context.Context) ([]*domain.Product, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	return c.products, c.hasProducts, nil
}

func (c *stubCatalogCache) SetProducts(_ context.Context, products []*domain.Product) error {
	if c.err != nil {
		return c.err
	}
	c.products = products
	c.hasProducts = true
	return nil
}

func (c *stubCatalogCache) InvalidateProducts(_ context.Context) error {
	c.products = nil
	c.hasProducts = false
	return c.err
}

func (c *stubCatalogCache) GetPets(_ context.Context) ([]*domain.Pet, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	return c.pets, c.hasPets, nil
}

func (c *stubCatalogCache) SetPets(_ context.Context, pets []*domain.Pet) error {
	if c.err != nil {
		return c.err
	}
	c.pets = pets
	c.hasPets = true
	return nil
}

func (c *stubCatalogCache) InvalidatePets(_ context.Context) error {
	c.pets = nil
	c.hasPets = false
	return c.err
}

func TestPetService_Create_SetsSellerAndStatus(t *testing.T) {
	repo := newStubPetRepo()
	cache := &stubCatalogCache{}
	svc := NewPetService(repo, cache, zerolog.Nop())

	pet, err := svc.Create(context.Background(), sellerCaller("s1"), ports.PetInput{
		Name: "Rex", Species: "dog", Price: 100,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if pet.SellerID != "s1" {
		t.Fatalf("expected seller s1, got %s", pet.SellerID)
	}
	if pet.Status != domain.PetAvailable {
		t.Fatalf("new listings start available, got %s", pet.Status)
	}
}

func TestPetService_List_CacheReadThrough(t *testing.T) {
	repo := newStubPetRepo(rex())
	cache := &stubCatalogCache{}
	svc := NewPetService(repo, cache, zerolog.Nop())

	// Miss populates the cache.
	pets, err := svc.List(context.Background())
	if err != nil || len(pets) != 1 {
		t.Fatalf("list: got %v, %v", pets, err)
	}
	if !cache.hasPets {
		t.Fatalf("expected cache populated after miss")
	}

	// A hit is served from the cache even when the repo changes.
	_ = repo.Delete(context.Background(), "pet1")
	pets, err = svc.List(context.Background())
	if err != nil || len(pets) != 1 {
		t.Fatalf("expected cached result, got %v, %v", pets, err)
	}
}

func TestPetService_List_CacheErrorFallsBack(t *testing.T) {
	repo := newStubPetRepo(rex())
	cache := &stubCatalogCache{err: errors.New("redis down")}
	svc := NewPetService(repo, cache, zerolog.Nop())

	pets, err := svc.List(context.Background())
	if err != nil || len(pets) != 1 {
		t.Fatalf("expected repo fallback, got %v, %v", pets, err)
	}
}

func TestPetService_Update_OwnListingOnly(t *testing.T) {
	repo := newStubPetRepo(rex())
	svc := NewPetService(repo, &stubCatalogCache{}, zerolog.Nop())

	in := ports.PetInput{Name: "Rex II", Species: "dog", Price: 150}

	if _, err := svc.Update(context.Background(), sellerCaller("s1"), "pet1", in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other seller, got %v", err)
	}

	pet, err := svc.Update(context.Background(), sellerCaller("s2"), "pet1", in)
	if err != nil {
		t.Fatalf("owner seller update failed: %v", err)
	}
	if pet.Name != "Rex II" || pet.Price != 150 {
		t.Fatalf("update not applied: %+v", pet)
	}
}

func TestPetService_Delete_ReservedRefused(t *testing.T) {
	pet := rex()
	pet.Status = domain.PetReserved
	repo := newStubPetRepo(pet)
	svc := NewPetService(repo, &stubCatalogCache{}, zerolog.Nop())

	if err := svc.Delete(context.Background(), adminCaller("a1"), "pet1"); !errors.Is(err, domain.ErrPetUnavailable) {
		t.Fatalf("expected ErrPetUnavailable, got %v", err)
	}
}

func TestPetService_Delete_InvalidatesCache(t *testing.T) {
	repo := newStubPetRepo(rex())
	cache := &stubCatalogCache{}
	svc := NewPetService(repo, cache, zerolog.Nop())

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := svc.Delete(context.Background(), sellerCaller("s2"), "pet1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if cache.hasPets {
		t.Fatalf("expected cache invalidated after delete")
	}
}
