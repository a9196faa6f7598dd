package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through JSON cache for report responses. Reports are not
// control flow, so every cache failure degrades to recomputing from the DB.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("analytics cache get failed key=%s error=%v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("analytics cache decode failed key=%s error=%v", key, err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("analytics cache set failed key=%s error=%v", key, err)
	}
}
