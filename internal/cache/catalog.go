package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/movie"
	"github.com/redis/go-redis/v9"
)

const moviesKey = "catalog:movies"

// Catalog is a read-through cache for the full movie list. Every catalog
// write invalidates it; reads that miss (or hit a broken redis) fall back
// to the store.
type Catalog struct {
	redisdb *redis.Client
	ttl     time.Duration
}

func NewCatalog(client *Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Catalog{
		redisdb: client.Raw(),
		ttl:     ttl,
	}
}

func (c *Catalog) GetMovies(ctx context.Context) ([]movie.Movie, bool) {
	raw, err := c.redisdb.Get(ctx, moviesKey).Bytes()

	if err != nil {
		// redis.Nil and transport errors are both just a miss
		return nil, false
	}

	var movies []movie.Movie

	err = json.Unmarshal(raw, &movies)

	if err != nil {
		return nil, false
	}

	return movies, true
}

func (c *Catalog) SetMovies(ctx context.Context, movies []movie.Movie) {
	raw, err := json.Marshal(movies)

	if err != nil {
		return
	}

	_ = c.redisdb.Set(ctx, moviesKey, raw, c.ttl).Err()
}

func (c *Catalog) Invalidate(ctx context.Context) {
	_ = c.redisdb.Del(ctx, moviesKey).Err()
}
