package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const cityCatalogKey = "cities:catalog"

// defaultCities seeds the catalog on first use. Operators can extend the
// Redis set without a redeploy.
var defaultCities = []string{
	"Mumbai", "Pune", "Nashik", "Nagpur", "Aurangabad", "Solapur", "Kolhapur",
	"Satara", "Sangli", "Ahmednagar", "Lonavala", "Alibaug", "Thane",
	"Navi Mumbai", "Panvel", "Karjat", "Khopoli", "Mahabaleshwar", "Shirdi",
	"Igatpuri",
}

// CityCatalog is the enumerable list of valid city names backing search and
// publish validation.
type CityCatalog interface {
	List(ctx context.Context) ([]string, error)
	Contains(ctx context.Context, city string) (bool, error)
}

type cityCatalog struct {
	redis *redis.Client
}

func NewCityCatalog(redisClient *redis.Client) CityCatalog {
	return &cityCatalog{redis: redisClient}
}

func (c *cityCatalog) List(ctx context.Context) ([]string, error) {
	cities, err := c.redis.SMembers(ctx, cityCatalogKey).Result()
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		if err := c.seed(ctx); err != nil {
			return nil, err
		}
		return c.redis.SMembers(ctx, cityCatalogKey).Result()
	}
	return cities, nil
}

func (c *cityCatalog) Contains(ctx context.Context, city string) (bool, error) {
	ok, err := c.redis.SIsMember(ctx, cityCatalogKey, city).Result()
	if err != nil {
		return false, err
	}
	if !ok {
		// The set may not be seeded yet on a fresh instance.
		n, err := c.redis.SCard(ctx, cityCatalogKey).Result()
		if err != nil {
			return false, err
		}
		if n == 0 {
			if err := c.seed(ctx); err != nil {
				return false, err
			}
			return c.redis.SIsMember(ctx, cityCatalogKey, city).Result()
		}
	}
	return ok, nil
}

func (c *cityCatalog) seed(ctx context.Context) error {
	members := make([]interface{}, len(defaultCities))
	for i, city := range defaultCities {
		members[i] = city
	}
	return c.redis.SAdd(ctx, cityCatalogKey, members...).Err()
}
