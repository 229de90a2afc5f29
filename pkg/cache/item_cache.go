package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized read model for a checked-in item stored in
// Redis. Fields are stored as a Redis hash. The location is kept as a bare
// id — serving the expanded location object is the repository's job.
type CachedItem struct {
	ID         uuid.UUID  `json:"id"`
	Barcode    string     `json:"barcode"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	ScannedAt  time.Time  `json:"scanned_at"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	key := c.key(itemID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	quantity, err := strconv.Atoi(vals["quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}
	scannedAt, err := time.Parse(time.RFC3339Nano, vals["scanned_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse scanned_at: %w", err)
	}

	item := &CachedItem{
		ID:        id,
		Barcode:   vals["barcode"],
		Name:      vals["name"],
		Quantity:  quantity,
		ScannedAt: scannedAt,
	}
	if s := vals["location_id"]; s != "" {
		locID, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("cache parse location_id: %w", err)
		}
		item.LocationID = &locID
	}
	return item, nil
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	locationID := ""
	if item.LocationID != nil {
		locationID = item.LocationID.String()
	}
	key := c.key(item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", item.ID.String(),
		"barcode", item.Barcode,
		"name", item.Name,
		"quantity", strconv.Itoa(item.Quantity),
		"scanned_at", item.ScannedAt.UTC().Format(time.RFC3339Nano),
		"location_id", locationID,
	)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// SetLocation updates only the location_id field of an existing cache entry.
// No-ops (without error) when the entry is not cached.
func (c *ItemCache) SetLocation(ctx context.Context, itemID, locationID uuid.UUID) error {
	key := c.key(itemID)
	exists, err := c.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("cache exists: %w", err)
	}
	if exists == 0 {
		return nil
	}
	if err := c.client.Client().HSet(ctx, key, "location_id", locationID.String()).Err(); err != nil {
		return fmt.Errorf("cache set location: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{itemID}"
func (c *ItemCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}
