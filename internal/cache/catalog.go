package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sharpcut-app/booking-api/internal/models"
)

const (
	keyBarbers  = "catalog:barbers"
	keyServices = "catalog:services"

	catalogTTL = 5 * time.Minute
)

// CatalogCache keeps the public barber/service listings in redis. Misses and
// redis failures fall through to the database; admin writes bust the keys.
type CatalogCache struct {
	rdb *redis.Client
}

func NewCatalogCache(rdb *redis.Client) *CatalogCache {
	return &CatalogCache{rdb: rdb}
}

func (c *CatalogCache) GetBarbers(ctx context.Context) ([]models.Barber, bool) {
	var barbers []models.Barber
	if !c.get(ctx, keyBarbers, &barbers) {
		return nil, false
	}
	return barbers, true
}

func (c *CatalogCache) SetBarbers(ctx context.Context, barbers []models.Barber) {
	c.set(ctx, keyBarbers, barbers)
}

func (c *CatalogCache) GetServices(ctx context.Context) ([]models.Service, bool) {
	var services []models.Service
	if !c.get(ctx, keyServices, &services) {
		return nil, false
	}
	return services, true
}

func (c *CatalogCache) SetServices(ctx context.Context, services []models.Service) {
	c.set(ctx, keyServices, services)
}

// Bust drops both listings; called after any admin catalog write.
func (c *CatalogCache) Bust(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, keyBarbers, keyServices)
}

func (c *CatalogCache) get(ctx context.Context, key string, out any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), out) == nil
}

func (c *CatalogCache) set(ctx context.Context, key string, val any) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(val)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, key, data, catalogTTL)
}
