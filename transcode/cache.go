package transcode

import (
	"sync"
	"time"

	"github.com/tekert/golang-transcode/logsampler"
)

const (
	// Using a power of 2 for shardCount allows for faster modulo using bitwise AND.
	stringCacheShardCount = 256
)

// globalStringCache is a sharded cache to reduce lock contention.
var globalStringCache = newStringCache()

// evictionSampler keeps shard-clear tracing cheap when churn is high.
var evictionSampler = logsampler.NewRateSampler(100, time.Minute)

// stringCacheShard holds a single, lockable shard of the cache.
type stringCacheShard struct {
	mu   sync.RWMutex
	data map[uint64]string
}

// stringCache is the main sharded cache structure. It contains multiple shards
// to allow for concurrent access with minimal contention.
type stringCache struct {
	shards [stringCacheShardCount]*stringCacheShard
	// maxEntriesPerShard can be tuned based on the expected number of unique strings.
	maxEntriesPerShard int
}

// newStringCache creates and initializes a new sharded cache.
func newStringCache() *stringCache {
	c := &stringCache{}
	c.maxEntriesPerShard = 64 // default max entries per shard
	for i := range stringCacheShardCount {
		c.shards[i] = &stringCacheShard{
			data: make(map[uint64]string, c.maxEntriesPerShard), // Pre-allocate for common case
		}
	}
	return c
}

// getShard returns the appropriate shard for a given hash using a fast bitwise AND.
//
//go:inline
func (c *stringCache) getShard(hash uint64) *stringCacheShard {
	return c.shards[hash&(stringCacheShardCount-1)]
}

// hash calculates the FNV-1a hash for a UTF-16 slice.
//
//go:inline
func (c *stringCache) hash(data []uint16) uint64 {
	h := uint64(14695981039346656037) // FNV offset basis
	for _, v := range data {
		h ^= uint64(v)
		h *= 1099511628211 // Mult FNV prime
	}
	return h
}

// getKey retrieves a value from the cache for a given hash. It locks only one shard.
func (c *stringCache) getKey(hash uint64) (string, bool) {
	shard := c.getShard(hash)
	shard.mu.RLock()
	s, ok := shard.data[hash]
	shard.mu.RUnlock()
	return s, ok
}

// setKey adds a value to the cache. It locks only one shard.
func (c *stringCache) setKey(hash uint64, value string) {
	shard := c.getShard(hash)
	shard.mu.Lock()
	// Simple eviction: if a shard is full, clear just that shard.
	if len(shard.data) >= c.maxEntriesPerShard {
		// This prevents unbounded memory growth in one shard.
		if evictionSampler.ShouldLog("shard-evict", nil) {
			LogTrace("string cache shard full, clearing", "entries", len(shard.data))
		}
		clear(shard.data)
	}
	shard.data[hash] = value
	shard.mu.Unlock()
}
