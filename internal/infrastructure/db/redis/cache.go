package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pawmarket/petstore-api/internal/api/metrics"
	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

const (
	keyProducts = "catalog:products"
	keyPets     = "catalog:pets"
)

// CatalogCache stores serialized catalog listings in Redis so that hot list
// endpoints skip Mongo. Entries expire after the configured TTL and are
// deleted eagerly on any catalog mutation.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) GetProducts(ctx context.Context) ([]*domain.Product, bool, error) {
	var products []*domain.Product
	ok, err := c.get(ctx, keyProducts, "products", &products)
	return products, ok, err
}

func (c *CatalogCache) SetProducts(ctx context.Context, products []*domain.Product) error {
	return c.set(ctx, keyProducts, products)
}

func (c *CatalogCache) InvalidateProducts(ctx context.Context) error {
	return c.client.Del(ctx, keyProducts).Err()
}

func (c *CatalogCache) GetPets(ctx context.Context) ([]*domain.Pet, bool, error) {
	var pets []*domain.Pet
	ok, err := c.get(ctx, keyPets, "pets", &pets)
	return pets, ok, err
}

func (c *CatalogCache) SetPets(ctx context.Context, pets []*domain.Pet) error {
	return c.set(ctx, keyPets, pets)
}

func (c *CatalogCache) InvalidatePets(ctx context.Context) error {
	return c.client.Del(ctx, keyPets).Err()
}

func (c *CatalogCache) get(ctx context.Context, key, list string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CatalogCacheTotal.WithLabelValues(list, "miss").Inc()
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	metrics.CatalogCacheTotal.WithLabelValues(list, "hit").Inc()
	return true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

var _ ports.CatalogCache = (*CatalogCache)(nil)
