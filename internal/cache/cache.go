// Package cache stores recipe search results in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
)

const (
	keyPrefix     = "recipe-search:"
	generationKey = keyPrefix + "generation"
)

// SearchCache caches ordered search results per normalised criteria.
// Invalidate bumps a generation counter that is part of every key, so results
// computed before a write are never served after it.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "search-cache"),
	}
}

// GetOrCompute returns cached results for c or runs compute once for all
// concurrent callers with the same criteria. The bool reports a cache hit.
func (c *SearchCache) GetOrCompute(
	ctx context.Context,
	criteria search.Criteria,
	compute func() ([]models.Recipe, error),
) ([]models.Recipe, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Error("cache generation lookup failed", "error", err)
		c.misses.Add(1)
		recipes, err := compute()
		return recipes, false, err
	}

	key := c.buildKey(gen, criteria)
	if recipes, ok := c.get(ctx, key); ok {
		return recipes, true, nil
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if recipes, ok := c.get(ctx, key); ok {
			return recipes, nil
		}
		recipes, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, recipes)
		return recipes, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]models.Recipe), false, nil
}

// Invalidate makes every cached result unreachable.
func (c *SearchCache) Invalidate(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("invalidating search cache: %w", err)
	}
	c.logger.Debug("cache invalidated", "generation", gen)
	return nil
}

func (c *SearchCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *SearchCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *SearchCache) get(ctx context.Context, key string) ([]models.Recipe, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.hits.Add(1)
	return recipes, true
}

func (c *SearchCache) set(ctx context.Context, key string, recipes []models.Recipe) {
	data, err := json.Marshal(recipes)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

func (c *SearchCache) buildKey(gen int64, criteria search.Criteria) string {
	hash := sha256.Sum256([]byte(Fingerprint(criteria)))
	return fmt.Sprintf("%s%d:%x", keyPrefix, gen, hash[:16])
}

// Fingerprint renders criteria canonically: criteria that select the same
// recipes render identically.
func Fingerprint(c search.Criteria) string {
	text := ""
	if strings.TrimSpace(c.Text) != "" {
		text = search.Fold(c.Text)
	}
	category := string(models.CategoryAll)
	if !c.Category.IsWildcard() {
		category = string(c.Category)
	}
	servings := 0
	if c.Servings > 0 {
		servings = c.Servings
	}

	var b strings.Builder
	b.WriteString("text=" + strconv.Quote(text))
	b.WriteString("|category=" + category)
	b.WriteString("|servings=" + strconv.Itoa(servings))
	b.WriteString("|include=" + joinIDs(c.Include))
	b.WriteString("|exclude=" + joinIDs(c.Exclude))
	return b.String()
}

func joinIDs(set search.IDSet) string {
	ids := set.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
