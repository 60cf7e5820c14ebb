package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

type stubCategoryRepo struct {
	categories map[string]*domain.Category
}

func newStubCategoryRepo(categories ...*domain.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{categories: make(map[string]*domain.Category)}
	for _, c := range categories {
		clone := *c
		r.categories[c.ID] = &clone
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func TestCategoryService_Create(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	category, err := svc.Create(context.Background(), ports.CategoryInput{Name: "Dogs", Description: "Everything canine"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if category.Name != "Dogs" {
		t.Fatalf("expected name Dogs, got %s", category.Name)
	}
}

func TestCategoryService_Update(t *testing.T) {
	repo := newStubCategoryRepo(&domain.Category{ID: "cat1", Name: "Dogs"})
	svc := NewCategoryService(repo)

	updated, err := svc.Update(context.Background(), "cat1", ports.CategoryInput{Name: "Cats", Description: "Feline goods"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Cats" || updated.Description != "Feline goods" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), "missing", ports.CategoryInput{Name: "Birds"}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_Delete(t *testing.T) {
	repo := newStubCategoryRepo(&domain.Category{ID: "cat1", Name: "Dogs"})
	svc := NewCategoryService(repo)

	if err := svc.Delete(context.Background(), "cat1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "cat1"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
