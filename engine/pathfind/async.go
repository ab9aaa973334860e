package pathfind

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/egeozcan/unnamed-rts-sub001/engine/core"
)

// Request is one queued path query, gathered during unit update and drained
// by the pathfinding service at the top of the next tick (spec §2 stage 5).
type Request struct {
	Key   CacheKey
	Start Point
	Goal  Point
	Grid  *NavGrid
	Tile  float64
}

// Service fronts the Cache with a worker pool. Per spec §5, this pool is
// only ever an asynchronous *cache producer*: nothing downstream blocks
// waiting on it. A unit whose path isn't cached yet steers directly this
// tick and the request is retried once Drain completes. No caller runs
// FindPath itself: if Drain is never called, lookups keep missing and
// units keep steering directly toward their targets.
type Service struct {
	mu    sync.Mutex
	cache *Cache
}

func NewService(ttlTicks int) *Service {
	return &Service{cache: NewCache(ttlTicks)}
}

func (s *Service) Cache() *Cache { return s.cache }

// Lookup is the synchronous path: a cache hit, or nil+false on a miss (the
// caller decides whether to compute inline or enqueue a Request).
func (s *Service) Lookup(key CacheKey, tick uint64) ([]core.Vec2, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key, tick)
}

// InvalidateAll drops every cached path. PlaceBuilding is its only caller:
// selling a building or a change in the danger grid does not invalidate,
// and paths cached before such a change are served until their TTL ends.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Invalidate()
}

// Drain computes every queued request concurrently and populates the
// cache. Errors never propagate: a failed or NoPath request simply caches a
// nil path, which callers already treat as "fall back to direct steering."
func (s *Service) Drain(ctx context.Context, requests []Request, tick uint64) {
	if len(requests) == 0 {
		return
	}
	g, _ := errgroup.WithContext(ctx)
	for _, req := range requests {
		req := req
		g.Go(func() error {
			raw, err := FindPath(req.Grid, req.Start.X, req.Start.Y, req.Goal.X, req.Goal.Y)
			var world []core.Vec2
			if err == nil {
				smoothed := SmoothPath(req.Grid, raw)
				world = ToWorld(req.Grid, smoothed, req.Tile)
			}
			s.mu.Lock()
			s.cache.Put(req.Key, world, tick)
			s.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}
