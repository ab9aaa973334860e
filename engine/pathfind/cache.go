package pathfind

import "github.com/egeozcan/unnamed-rts-sub001/engine/core"

// CacheKey identifies a path request (spec §4.3: "keyed by (startTile,
// goalTile, radiusClass, playerId)").
type CacheKey struct {
	Start    Point
	Goal     Point
	Radius   RadiusClass
	PlayerID int
}

type cacheEntry struct {
	path      []core.Vec2
	expiresAt uint64
}

// Cache memoizes path results with a fixed TTL (spec §4.3). Invalidate
// drops all of them at once; it runs only when a building is placed.
type Cache struct {
	ttl     uint64
	entries map[CacheKey]cacheEntry
}

func NewCache(ttlTicks int) *Cache {
	return &Cache{ttl: uint64(ttlTicks), entries: make(map[CacheKey]cacheEntry)}
}

// Get returns a cached path if present and not expired as of tick.
func (c *Cache) Get(key CacheKey, tick uint64) ([]core.Vec2, bool) {
	e, ok := c.entries[key]
	if !ok || tick >= e.expiresAt {
		return nil, false
	}
	return e.path, true
}

// Put stores a result (path may be nil, caching a known NoPath outcome too).
func (c *Cache) Put(key CacheKey, path []core.Vec2, tick uint64) {
	c.entries[key] = cacheEntry{path: path, expiresAt: tick + c.ttl}
}

// Invalidate drops every cached entry. It is called (through
// Service.InvalidateAll) when a building is placed; a sale or a change in
// the danger grid does not call it.
func (c *Cache) Invalidate() {
	c.entries = make(map[CacheKey]cacheEntry)
}
